// Package export renders an approved absence request into its final
// permit document.
package export

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"github.com/alcaldia-digital/ausentismo/api/model"
)

// Snapshot is the read-only view a finished request is rendered from.
type Snapshot struct {
	ID          uint
	FullName    string
	NationalID  string
	JobTitle    string
	Office      string
	WorkArea    string
	Motive      string
	MotiveText  string
	SubmittedAt time.Time

	HoursDate *time.Time
	HourStart *string
	HourEnd   *string
	HourCount *int

	DayStart *time.Time
	DayEnd   *time.Time
	DayCount *int

	ChiefName          string
	ChiefDecidedAt     *time.Time
	ChiefObservation   string
	SecretaryName      string
	SecretaryDecidedAt *time.Time
	CompliesWithLaw    bool
}

const documentTemplate = `PERMISO DE AUSENTISMO LABORAL No. {{.ID}}

Funcionario: {{.FullName}}
Cédula: {{.NationalID}}
{{- if .JobTitle}}
Cargo: {{.JobTitle}}
{{- end}}
{{- if .Office}}
Dependencia: {{.Office}}
{{- end}}
{{- if .WorkArea}}
Área: {{.WorkArea}}
{{- end}}

Motivo: {{.Motive}}{{if .MotiveText}} — {{.MotiveText}}{{end}}
Fecha de solicitud: {{.SubmittedAt.Format "2006-01-02"}}
{{- if .HoursDate}}

Permiso por horas el {{.HoursDate.Format "2006-01-02"}}{{if .HourStart}} de {{deref .HourStart}}{{end}}{{if .HourEnd}} a {{deref .HourEnd}}{{end}}{{if .HourCount}} ({{derefInt .HourCount}} horas){{end}}
{{- end}}
{{- if .DayStart}}

Permiso por días del {{.DayStart.Format "2006-01-02"}}{{if .DayEnd}} al {{.DayEnd.Format "2006-01-02"}}{{end}}{{if .DayCount}} ({{derefInt .DayCount}} días){{end}}
{{- end}}

Aprobado por jefe inmediato: {{.ChiefName}}{{if .ChiefDecidedAt}} ({{.ChiefDecidedAt.Format "2006-01-02"}}){{end}}
{{- if .ChiefObservation}}
Observación del jefe: {{.ChiefObservation}}
{{- end}}
Aprobado por secretario de despacho: {{.SecretaryName}}{{if .SecretaryDecidedAt}} ({{.SecretaryDecidedAt.Format "2006-01-02"}}){{end}}
Se ajusta a la ley: {{if .CompliesWithLaw}}SÍ{{else}}NO{{end}}
`

var tmpl = template.Must(template.New("permit").Funcs(template.FuncMap{
	"deref":    func(s *string) string { return *s },
	"derefInt": func(i *int) int { return *i },
}).Parse(documentTemplate))

// Render produces the plain-text permit document for an approved
// request.
func Render(snapshot Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, snapshot); err != nil {
		return nil, fmt.Errorf("rendering permit document: %w", err)
	}
	return buf.Bytes(), nil
}

// NewSnapshot copies the renderable fields out of a request.
func NewSnapshot(request *model.Request) Snapshot {
	snapshot := Snapshot{
		ID:          request.ID,
		FullName:    request.FullName,
		NationalID:  request.NationalID,
		JobTitle:    request.JobTitle,
		Office:      request.Office,
		WorkArea:    request.WorkArea,
		Motive:      request.Motive,
		MotiveText:  request.MotiveText,
		SubmittedAt: request.SubmittedAt,

		HoursDate: request.HoursDate,
		HourStart: request.HourStart,
		HourEnd:   request.HourEnd,
		HourCount: request.HourCount,

		DayStart: request.DayStart,
		DayEnd:   request.DayEnd,
		DayCount: request.DayCount,

		ChiefDecidedAt:     request.ChiefDecidedAt,
		SecretaryDecidedAt: request.SecretaryDecidedAt,
		CompliesWithLaw:    request.CompliesYes,
	}
	if request.ChiefName != nil {
		snapshot.ChiefName = *request.ChiefName
	}
	if request.ChiefObservation != nil {
		snapshot.ChiefObservation = *request.ChiefObservation
	}
	if request.SecretaryName != nil {
		snapshot.SecretaryName = *request.SecretaryName
	}
	return snapshot
}
