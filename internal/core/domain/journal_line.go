package domain

// EntryDirection says which side of the ledger a line books to.
type EntryDirection string

const (
	Debit  EntryDirection = "DEBIT"
	Credit EntryDirection = "CREDIT"
)

func (d EntryDirection) Valid() bool { return d == Debit || d == Credit }

// JournalEntryLine is a single line of a journal entry, affecting one account.
// Amount is always in the ledger's base currency; OriginalAmount keeps what was entered.
type JournalEntryLine struct {
	LineID           string               `json:"lineID"`
	AccountID        string               `json:"accountID"`
	Direction        EntryDirection       `json:"direction"`
	Amount           Money                `json:"amount"`
	OriginalAmount   Money                `json:"originalAmount"`
	OriginalCurrency string               `json:"originalCurrency"`
	Description      string               `json:"description,omitempty"`
	Dimensions       DimensionAssignments `json:"dimensions"`
}

// IsForeign reports whether the line was entered in a currency other than base.
func (l JournalEntryLine) IsForeign() bool {
	return l.OriginalCurrency != l.Amount.Currency
}
