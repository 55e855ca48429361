// Package dp serves the payroll (Departamento Pessoal) dashboard snapshot.
package dp

import "strings"

// AnyFilter matches every value of a PJ filter.
const AnyFilter = "Todas"

type PJStatus string

const (
	PJPending   PJStatus = "Pendente"
	PJReviewing PJStatus = "Em análise"
	PJApproved  PJStatus = "Aprovado"
	PJPaid      PJStatus = "Pago"
)

// PJClosing is one contractor invoice in the monthly closing.
type PJClosing struct {
	ID         string   `json:"id"`
	Partner    string   `json:"parceiro"`
	Area       string   `json:"area"`
	Competence string   `json:"competencia"`
	Amount     float64  `json:"valor"`
	Status     PJStatus `json:"status"`
	Risk       string   `json:"risco"`
}

type PJFilters struct {
	Competences []string   `json:"competencias"`
	Areas       []string   `json:"areas"`
	Statuses    []PJStatus `json:"status"`
}

// Termination is a rescisão case with its payable components.
type Termination struct {
	Employee          string  `json:"colaborador"`
	Role              string  `json:"cargo"`
	HiredOn           string  `json:"admissao"`
	TerminatedOn      string  `json:"desligamento"`
	Reason            string  `json:"motivo"`
	BaseSalary        float64 `json:"salarioBase"`
	FGTSBalance       float64 `json:"saldoFgts"`
	NoticePay         float64 `json:"avisoPrevio"`
	ProportionalLeave float64 `json:"feriasProporcionais"`
	ThirteenthSalary  float64 `json:"decimoTerceiro"`
	Deductions        float64 `json:"descontos"`
}

// NetTotal is the sum of every payable component minus deductions.
func (t Termination) NetTotal() float64 {
	return t.BaseSalary + t.NoticePay + t.ProportionalLeave + t.ThirteenthSalary + t.FGTSBalance - t.Deductions
}

type LeaveStatement struct {
	Employee string `json:"colaborador"`
	Period   string `json:"periodo"`
	Days     int    `json:"dias"`
	Status   string `json:"status"`
}

type LeaveSummary struct {
	BalanceDays    int              `json:"saldoDias"`
	OverdueDays    int              `json:"vencidasDias"`
	NextCompetence string           `json:"proximaCompetencia"`
	Statements     []LeaveStatement `json:"demonstrativos"`
}

// Snapshot is the whole dashboard payload.
type Snapshot struct {
	PJ struct {
		Items   []PJClosing `json:"itens"`
		Filters PJFilters   `json:"filtros"`
	} `json:"pj"`
	Termination struct {
		Current Termination `json:"casoAtual"`
	} `json:"rescisao"`
	Leave LeaveSummary `json:"ferias"`
}

// Filter selects PJ closings; empty or AnyFilter values match everything.
type Filter struct {
	Competence string
	Area       string
	Status     string
}

func matches(want, got string) bool {
	want = strings.TrimSpace(want)
	return want == "" || want == AnyFilter || want == got
}

// FilterPJ returns the closings matching f and their summed amount.
func (s Snapshot) FilterPJ(f Filter) ([]PJClosing, float64) {
	out := make([]PJClosing, 0, len(s.PJ.Items))
	var total float64
	for _, it := range s.PJ.Items {
		if matches(f.Competence, it.Competence) && matches(f.Area, it.Area) && matches(f.Status, string(it.Status)) {
			out = append(out, it)
			total += it.Amount
		}
	}
	return out, total
}
