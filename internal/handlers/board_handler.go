package handlers

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"hrops-gateway/internal/derive"
	"hrops-gateway/internal/models"

	"github.com/gin-gonic/gin"
)

// ErrCodeUnexpectedPayload marks a store listing that is not a list of records.
const ErrCodeUnexpectedPayload = "unexpected_payload"

// BoardItem is a task with its derived fields.
type BoardItem struct {
	models.Task
	Derived derive.Fields `json:"derived"`
}

// BoardSummary counts the board by column and by flag.
type BoardSummary struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus"`
	Overdue  int            `json:"overdue"`
	Critical int            `json:"critical"`
}

// Board serves the kanban view over the task proxy.
type Board struct {
	tasks *Proxy
	now   func() time.Time
}

func NewBoard(tasks *Proxy, now func() time.Time) *Board {
	if now == nil {
		now = time.Now
	}
	return &Board{tasks: tasks, now: now}
}

// Get handles GET /api/board
// Optional query param: now=YYYY-MM-DD pins the reference date.
func (b *Board) Get(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	now := b.now()
	if pinned := c.Query("now"); pinned != "" {
		t, ok := models.ParseDate(pinned)
		if !ok {
			c.JSON(http.StatusBadRequest, models.Fail(models.ErrCodeInvalidBody, "now must be YYYY-MM-DD"))
			return
		}
		now = t
	}

	env, status := b.tasks.List(c.Request.Context())
	if !env.OK {
		c.JSON(status, env)
		return
	}

	var tasks []models.Task
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &tasks); err != nil {
			c.JSON(http.StatusOK, models.Fail(ErrCodeUnexpectedPayload, "task list is not an array of records"))
			return
		}
	}

	items, summary := BuildBoard(tasks, now)
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"data":    items,
		"summary": summary,
	})
}

// BuildBoard derives every task against now and orders the result by risk, highest first.
func BuildBoard(tasks []models.Task, now time.Time) ([]BoardItem, BoardSummary) {
	summary := BoardSummary{ByStatus: make(map[string]int, len(models.Statuses))}
	// Initialize with zeros
	for _, s := range models.Statuses {
		summary.ByStatus[string(s)] = 0
	}

	items := make([]BoardItem, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == "" {
			t.Status = models.Statuses[0]
		}
		f := derive.Derive(t, now)
		items = append(items, BoardItem{Task: t, Derived: f})

		summary.Total++
		summary.ByStatus[string(t.Status)]++
		if f.IsOverdue {
			summary.Overdue++
		}
		if f.IsCritical {
			summary.Critical++
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Derived.RiskIndex != items[j].Derived.RiskIndex {
			return items[i].Derived.RiskIndex > items[j].Derived.RiskIndex
		}
		return items[i].Title < items[j].Title
	})
	return items, summary
}
