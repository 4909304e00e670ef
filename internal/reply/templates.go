package reply

import (
	"fmt"
	"time"

	"github.com/hyperjump/concierge/internal/intent"
)

// templateSet holds the response texts for one language. The greeting takes
// the account name and balance; intent texts are static.
type templateSet struct {
	greeting string
	intents  map[intent.Label]string
	unknown  string
}

var templates = map[string]templateSet{
	"pt": {
		greeting: "Olá %s! 👋 Saldo atual: %.2f USDC. ",
		intents: map[intent.Label]string{
			intent.Deposit:  "Para depositar: App → Wallet → Deposit (USDC, SOL, etc.). Se tens tx hash, envia aqui!",
			intent.Balance:  "O teu saldo é %.2f USDC. Queres ver movimentos?",
			intent.Card:     "Cartão ativo em 160+ países, sem taxas forex.",
			intent.Fees:     "Fees: 0% swaps internos, ~1% saques fiat, zero em viagens.",
			intent.Travel:   "Perfeito para viagens: cartão global + Apple Pay.",
			intent.Support:  "Suporte humano: ticket no app ou support@concierge.xyz",
			intent.Yield:    "Yield: até 4.5% APY em USDC (em breve).",
			intent.Cashback: "Cashback: até 5-8% + pontos atuais 420.",
		},
		unknown: "Não percebi... Tenta reformular (ex: 'saldo', 'depositar', 'cartão').",
	},
	"en": {
		greeting: "Hi %s! 👋 Current balance: %.2f USDC. ",
		intents: map[intent.Label]string{
			intent.Deposit:  "To deposit: App → Wallet → Deposit (USDC, SOL, etc.). Send tx hash if you have one!",
			intent.Balance:  "Your balance is %.2f USDC. Want to see transactions?",
			intent.Card:     "Card active in 160+ countries, no forex fees.",
			intent.Fees:     "Fees: 0% on internal swaps, ~1% on fiat withdrawals, zero on travel.",
			intent.Travel:   "Perfect for travel: global card + Apple Pay.",
			intent.Support:  "Human support: open ticket in app or email support@concierge.xyz",
			intent.Yield:    "Yield: up to 4.5% APY on USDC (coming soon).",
			intent.Cashback: "Cashback: up to 5-8% + current points 420.",
		},
		unknown: "Didn't understand... Try rephrasing (e.g. 'balance', 'deposit', 'card').",
	},
	"es": {
		greeting: "¡Hola %s! 👋 Saldo actual: %.2f USDC. ",
		intents: map[intent.Label]string{
			intent.Deposit:  "Para depositar: App → Wallet → Deposit (USDC, SOL, etc.). ¡Envía tx hash si la tienes!",
			intent.Balance:  "Tu saldo es %.2f USDC. ¿Quieres ver movimientos?",
			intent.Card:     "Tarjeta activa en +160 países, sin tasas forex.",
			intent.Fees:     "Comisiones: 0% en swaps internos, ~1% en retiros fiat, cero en viajes.",
			intent.Travel:   "Perfecto para viajes: tarjeta global + Apple Pay.",
			intent.Support:  "Soporte humano: abre ticket en app o email support@concierge.xyz",
			intent.Yield:    "Yield: hasta 4.5% APY en USDC (próximamente).",
			intent.Cashback: "Cashback: hasta 5-8% + puntos actuales 420.",
		},
		unknown: "No entendí... Intenta reformular (ej: 'saldo', 'depositar', 'tarjeta').",
	},
	"de": {
		greeting: "Hallo %s! 👋 Aktueller Saldo: %.2f USDC. ",
		intents: map[intent.Label]string{
			intent.Deposit:  "Zum Einzahlen: App → Wallet → Deposit (USDC, SOL usw.). Sende tx hash, wenn du einen hast!",
			intent.Balance:  "Dein Saldo beträgt %.2f USDC. Möchtest du Transaktionen sehen?",
			intent.Card:     "Karte aktiv in über 160 Ländern, keine Forex-Gebühren.",
			intent.Fees:     "Gebühren: 0% bei internen Swaps, ~1% bei Fiat-Abhebungen, null bei Reisen.",
			intent.Travel:   "Perfekt für Reisen: globale Karte + Apple Pay.",
			intent.Support:  "Menschlicher Support: Ticket in der App öffnen oder E-Mail an support@concierge.xyz",
			intent.Yield:    "Yield: bis zu 4,5% APY auf USDC (kommt bald).",
			intent.Cashback: "Cashback: bis zu 5-8% + aktuelle Punkte 420.",
		},
		unknown: "Nicht ganz verstanden... Versuche es umzuformulieren (z.B. 'Saldo', 'Einzahlen', 'Karte').",
	},
	"fr": {
		greeting: "Bonjour %s ! 👋 Solde actuel : %.2f USDC. ",
		intents: map[intent.Label]string{
			intent.Deposit:  "Pour déposer : App → Wallet → Deposit (USDC, SOL, etc.). Envoyez le tx hash si vous l'avez !",
			intent.Balance:  "Votre solde est de %.2f USDC. Voulez-vous voir les transactions ?",
			intent.Card:     "Carte active dans plus de 160 pays, sans frais forex.",
			intent.Fees:     "Frais : 0 % sur les swaps internes, ~1 % sur les retraits fiat, zéro en voyage.",
			intent.Travel:   "Parfait pour les voyages : carte globale + Apple Pay.",
			intent.Support:  "Support humain : ouvrez un ticket dans l'app ou envoyez un email à support@concierge.xyz",
			intent.Yield:    "Yield : jusqu'à 4,5 % APY sur USDC (bientôt disponible).",
			intent.Cashback: "Cashback : jusqu'à 5-8 % + points actuels 420.",
		},
		unknown: "Je n'ai pas bien compris... Essayez de reformuler (ex. : 'solde', 'déposer', 'carte').",
	},
}

// Builder assembles localized responses from a detected language and a
// resolved intent label.
type Builder struct {
	detector *Detector
	name     string
	balance  float64
	now      func() time.Time
}

// NewBuilder creates a builder greeting the given account name and balance.
func NewBuilder(name string, balance float64) *Builder {
	return &Builder{
		detector: NewDetector(),
		name:     name,
		balance:  balance,
		now:      time.Now,
	}
}

// DetectLanguage returns the language code for text, falling back to Portuguese.
func (b *Builder) DetectLanguage(text string) string {
	return b.detector.Detect(text)
}

// Build returns the full response for label in lang: greeting, intent text,
// and a timestamp line. Unsupported languages fall back to Portuguese.
func (b *Builder) Build(lang string, label intent.Label) string {
	set, ok := templates[lang]
	if !ok {
		set = templates[FallbackLanguage]
	}

	response := fmt.Sprintf(set.greeting, b.name, b.balance)
	if text, ok := set.intents[label]; ok {
		if label == intent.Balance {
			response += fmt.Sprintf(text, b.balance)
		} else {
			response += text
		}
	} else {
		response += set.unknown
	}
	response += fmt.Sprintf("\n\n(%s)", b.now().Format("02/01/2006 15:04"))
	return response
}

// Greet returns the plain greeting used by the /greet route.
func (b *Builder) Greet(name string) string {
	return fmt.Sprintf("Olá %s! Bem-vindo ao Concierge. Como posso ajudar hoje?", name)
}
