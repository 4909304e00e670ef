// Package intent classifies free-text user queries into concierge topics.
//
// Resolution is two-strategy: when the embedding model is available, queries
// are matched against label prototypes by cosine similarity; when it is not,
// an ordered keyword rule table is used instead.
package intent

// Label is the topic category a query resolves to.
type Label string

// The fixed label set. Unknown is the sentinel for unresolved queries and is
// never part of the candidate set.
const (
	Deposit  Label = "deposit"
	Balance  Label = "balance"
	Card     Label = "card"
	Fees     Label = "fees"
	Travel   Label = "travel"
	Support  Label = "support"
	Yield    Label = "yield"
	Cashback Label = "cashback"
	Unknown  Label = "unknown"
)

// Labels is the candidate set in resolution order. Both strategies iterate
// this order and resolve ties in favor of the earlier label, so the order is
// part of the observable behavior.
var Labels = []Label{Deposit, Balance, Card, Fees, Travel, Support, Yield, Cashback}

// KeywordRule maps a label to its case-insensitive trigger substrings.
type KeywordRule struct {
	Label    Label
	Triggers []string
}

// DefaultKeywordRules is the static fallback rule table, checked in order with
// first match winning. Triggers mix Portuguese and English since those are the
// dominant query languages.
var DefaultKeywordRules = []KeywordRule{
	{Label: Deposit, Triggers: []string{"depositar", "depósito", "tx hash", "adicionar fundos"}},
	{Label: Balance, Triggers: []string{"saldo", "quanto tenho", "balance"}},
	{Label: Card, Triggers: []string{"cartão", "card", "kard"}},
	{Label: Fees, Triggers: []string{"fees", "taxas", "custo", "comissão"}},
	{Label: Travel, Triggers: []string{"viagem", "travel", "fora país"}},
	{Label: Support, Triggers: []string{"ajuda", "suporte", "human", "ticket"}},
	{Label: Yield, Triggers: []string{"yield", "juros", "apy", "ganhar"}},
	{Label: Cashback, Triggers: []string{"cashback", "recompensa", "pontos"}},
}

// DefaultPrototypes is the text embedded for each label on the semantic path.
// Deployments can override individual entries via configuration.
var DefaultPrototypes = map[Label]string{
	Deposit:  "depósito",
	Balance:  "saldo",
	Card:     "cartão",
	Fees:     "fees",
	Travel:   "viagens",
	Support:  "suporte",
	Yield:    "yield",
	Cashback: "cashback",
}

// DefaultThreshold is the minimum cosine similarity a label must strictly
// exceed to be returned from the semantic path.
const DefaultThreshold = 0.62
