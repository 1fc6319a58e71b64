package normalize

import "github.com/sheetsite/core/internal/modules/sheets/gviz"

// ActiveFlag is the tri-valued "active" column as it appears in the sheet.
type ActiveFlag uint8

const (
	// ActiveUnspecified is a missing, null or blank cell.
	ActiveUnspecified ActiveFlag = iota
	ActiveYes
	ActiveNo
)

func (f ActiveFlag) String() string {
	switch f {
	case ActiveYes:
		return "yes"
	case ActiveNo:
		return "no"
	default:
		return "unspecified"
	}
}

// Participates collapses the flag to a boolean. An unspecified flag counts
// as active: most rows omit the column and must still render.
func (f ActiveFlag) Participates() bool {
	return f != ActiveNo
}

// ParseActive reads an "active" cell: blank is unspecified, "yes" or "כן" in
// any case is yes, every other value is no.
func ParseActive(v gviz.Value) ActiveFlag {
	if v.IsBlank() {
		return ActiveUnspecified
	}
	switch fold(v.String()) {
	case "yes", "כן":
		return ActiveYes
	default:
		return ActiveNo
	}
}

// Active is ParseActive collapsed to a boolean.
func Active(v gviz.Value) bool {
	return ParseActive(v).Participates()
}
