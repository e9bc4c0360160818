package journal

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/tradeplan/pkg/id"
)

// FormatEntryOrg renders an Entry as an Org-mode heading with its facts in
// a PROPERTIES drawer and the note as the body.
func FormatEntryOrg(e Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** %s %s %s (%s)\n", e.Date, strings.ToUpper(string(e.Outcome)), signedMoney(e.Signed()), shortID(e.ID))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":ID: %s\n", e.ID)
	if at, ok := id.Time(e.ID); ok {
		fmt.Fprintf(&b, ":LOGGED: [%s]\n", at.Local().Format("2006-01-02 Mon 15:04"))
	}
	fmt.Fprintf(&b, ":DATE: %s\n", e.Date)
	fmt.Fprintf(&b, ":OUTCOME: %s\n", e.Outcome)
	fmt.Fprintf(&b, ":AMOUNT: %.2f\n", e.Amount)
	fmt.Fprintf(&b, ":COMMISSION: %.2f\n", e.Commission)
	fmt.Fprintf(&b, ":NET_PL: %.2f\n", e.NetPL())
	if e.Lot != nil {
		fmt.Fprintf(&b, ":LOT: %.2f\n", *e.Lot)
	}
	if e.Points != nil {
		fmt.Fprintf(&b, ":TP_POINTS: %g\n", *e.Points)
	}
	if e.SL != nil {
		fmt.Fprintf(&b, ":SL_POINTS: %g\n", *e.SL)
	}
	b.WriteString(":END:\n")
	if e.Note != "" {
		b.WriteString("\n")
		b.WriteString(e.Note)
		b.WriteString("\n")
	}
	return b.String()
}

// FormatEntriesOrg renders entries oldest first, separated by blank lines.
func FormatEntriesOrg(entries []Entry) string {
	var b strings.Builder
	for i, e := range SortByDate(entries) {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatEntryOrg(e))
	}
	return b.String()
}

func signedMoney(x float64) string {
	if x < 0 {
		return fmt.Sprintf("-$%.2f", -x)
	}
	return fmt.Sprintf("+$%.2f", x)
}

// shortID is the tail of the id. A ULID's leading characters are its
// timestamp, so the tail is what tells entries logged together apart.
func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[len(full)-8:]
}
