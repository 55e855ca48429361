package dp

// Current returns the dashboard snapshot. The payroll system is not integrated yet,
// so the figures are the fixed sample the DP team signed off on.
func Current() Snapshot {
	var s Snapshot
	s.PJ.Items = []PJClosing{
		{ID: "PJ-221", Partner: "Camila R.", Area: "Marketing", Competence: "Ago/2024", Amount: 12800, Status: PJReviewing, Risk: "Médio"},
		{ID: "PJ-238", Partner: "Studio Lima", Area: "Design", Competence: "Ago/2024", Amount: 18900, Status: PJApproved, Risk: "Baixo"},
		{ID: "PJ-245", Partner: "Rafa M.", Area: "Conteúdo", Competence: "Set/2024", Amount: 9400, Status: PJPending, Risk: "Alto"},
		{ID: "PJ-251", Partner: "Agência Pulse", Area: "Performance", Competence: "Set/2024", Amount: 21500, Status: PJPaid, Risk: "Baixo"},
		{ID: "PJ-263", Partner: "Kai V.", Area: "Produto", Competence: "Set/2024", Amount: 15200, Status: PJReviewing, Risk: "Médio"},
	}
	s.PJ.Filters = PJFilters{
		Competences: []string{"Ago/2024", "Set/2024"},
		Areas:       []string{"Marketing", "Design", "Conteúdo", "Performance", "Produto"},
		Statuses:    []PJStatus{PJPending, PJReviewing, PJApproved, PJPaid},
	}
	s.Termination.Current = Termination{
		Employee:          "Ana Souza",
		Role:              "Analista de Operações",
		HiredOn:           "15/03/2021",
		TerminatedOn:      "20/09/2024",
		Reason:            "Acordo mútuo",
		BaseSalary:        6200,
		FGTSBalance:       8900,
		NoticePay:         3100,
		ProportionalLeave: 1850,
		ThirteenthSalary:  2400,
		Deductions:        960,
	}
	s.Leave = LeaveSummary{
		BalanceDays:    18,
		OverdueDays:    6,
		NextCompetence: "Nov/2024",
		Statements: []LeaveStatement{
			{Employee: "Natan C.", Period: "2023/2024", Days: 30, Status: "Programada"},
			{Employee: "Bruna L.", Period: "2022/2023", Days: 15, Status: "Vencida"},
			{Employee: "Paula F.", Period: "2023/2024", Days: 12, Status: "Em aberto"},
		},
	}
	return s
}
