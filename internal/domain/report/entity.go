package report

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/cmlabs-hris/salarycalc-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Kind identifies one of the payroll statements.
type Kind string

const (
	KindSummary  Kind = "summary"
	KindSick     Kind = "sick"
	KindVacation Kind = "vacation"
	KindBonus    Kind = "bonus"
)

// Title is printed on every statement and names its sheet.
const Title = "Расчетная ведомость"

// Signature is printed under the footer.
const Signature = "Гл. бухгалтер"

// FooterLabel opens the footer row.
const FooterLabel = "Итого по ведомости"

// ContentTypeXLSX is the media type of exported workbooks.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var kinds = []Kind{KindSummary, KindBonus, KindSick, KindVacation}

var displayNames = map[Kind]string{
	KindSummary:  "Выплаты",
	KindSick:     "Больничные",
	KindVacation: "Отпуска",
	KindBonus:    "Премии",
}

// Kinds lists every statement kind in display order.
func Kinds() []Kind {
	return append([]Kind(nil), kinds...)
}

// ParseKind returns ErrUnknownKind for anything but the four statement names.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", ErrUnknownKind
	}
	return k, nil
}

func (k Kind) Valid() bool {
	_, ok := displayNames[k]
	return ok
}

func (k Kind) DisplayName() string {
	return displayNames[k]
}

func (k Kind) Filename() string {
	return string(k) + ".xlsx"
}

type CellType int

const (
	CellEmpty CellType = iota
	CellInt
	CellDecimal
	CellText
)

// Cell is one statement value. Decimal cells always render with two fractional digits.
type Cell struct {
	Type    CellType
	Int     int
	Decimal decimal.Decimal
	Text    string
}

func IntCell(n int) Cell {
	return Cell{Type: CellInt, Int: n}
}

func DecimalCell(d decimal.Decimal) Cell {
	return Cell{Type: CellDecimal, Decimal: d}
}

func TextCell(s string) Cell {
	return Cell{Type: CellText, Text: s}
}

func (c Cell) String() string {
	switch c.Type {
	case CellInt:
		return strconv.Itoa(c.Int)
	case CellDecimal:
		return c.Decimal.StringFixed(2)
	case CellText:
		return c.Text
	default:
		return ""
	}
}

func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Type {
	case CellInt:
		return json.Marshal(c.Int)
	case CellDecimal, CellText:
		return json.Marshal(c.String())
	default:
		return []byte("null"), nil
	}
}

type Row []Cell

// Totals accumulates already rounded per-employee amounts.
type Totals struct {
	Worked   payroll.Amounts
	Sick     payroll.Amounts
	Vacation payroll.Amounts
	Bonus    payroll.Amounts
	Total    payroll.Amounts
}

func NewTotals() Totals {
	zero := payroll.Amounts{Payments: decimal.Zero, Tax: decimal.Zero, Net: decimal.Zero}
	return Totals{Worked: zero, Sick: zero, Vacation: zero, Bonus: zero, Total: zero}
}

func (t Totals) Add(r payroll.Result) Totals {
	return Totals{
		Worked:   t.Worked.Add(r.Worked),
		Sick:     t.Sick.Add(r.Sick),
		Vacation: t.Vacation.Add(r.Vacation),
		Bonus:    t.Bonus.Add(r.Bonus),
		Total:    t.Total.Add(r.Total),
	}
}

type Report struct {
	Kind             Kind      `json:"kind"`
	Name             string    `json:"name"`
	Month            int       `json:"month"`
	Year             int       `json:"year"`
	OrganizationName string    `json:"organization_name"`
	Title            string    `json:"title"`
	Caption          string    `json:"caption"`
	Header           []string  `json:"header"`
	Rows             []Row     `json:"rows"`
	Footer           Row       `json:"footer"`
	Signature        string    `json:"signature"`
	Empty            bool      `json:"empty"`
	GeneratedAt      time.Time `json:"generated_at"`
	RunID            string    `json:"-"`
	Totals           Totals    `json:"-"`
}

// File is a rendered statement ready for download.
type File struct {
	Filename    string
	ContentType string
	Content     []byte
}
