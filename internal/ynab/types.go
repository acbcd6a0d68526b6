package ynab

import "weeknab/internal/core"

// Wire types mirror the YNAB v1 envelope: every payload sits under "data",
// amounts are integer milliunits, nullable fields are pointers.

type errorResponse struct {
	Error struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Detail string `json:"detail"`
	} `json:"error"`
}

type budgetsResponse struct {
	Data struct {
		Budgets []budgetSummary `json:"budgets"`
	} `json:"data"`
}

type budgetSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type categoriesResponse struct {
	Data struct {
		CategoryGroups []categoryGroup `json:"category_groups"`
	} `json:"data"`
}

type categoryGroup struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Hidden     bool       `json:"hidden"`
	Deleted    bool       `json:"deleted"`
	Categories []category `json:"categories"`
}

type category struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	CategoryGroupName *string `json:"category_group_name"`
	Budgeted          int64   `json:"budgeted"`
	Balance           int64   `json:"balance"`
	GoalCadence       *int    `json:"goal_cadence"`
	GoalTarget        *int64  `json:"goal_target"`
	Hidden            bool    `json:"hidden"`
}

type transactionsResponse struct {
	Data struct {
		Transactions []transaction `json:"transactions"`
	} `json:"data"`
}

type transaction struct {
	ID              string           `json:"id"`
	Date            core.Date        `json:"date"`
	Amount          int64            `json:"amount"`
	PayeeName       *string          `json:"payee_name"`
	CategoryName    *string          `json:"category_name"`
	Subtransactions []subTransaction `json:"subtransactions"`
}

type subTransaction struct {
	Amount       int64   `json:"amount"`
	PayeeName    *string `json:"payee_name"`
	CategoryName *string `json:"category_name"`
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (b budgetSummary) toDomain() core.BudgetSummary {
	return core.BudgetSummary{ID: b.ID, Name: b.Name}
}

func (g categoryGroup) toDomain() core.CategoryGroup {
	group := core.CategoryGroup{
		ID:      g.ID,
		Name:    g.Name,
		Hidden:  g.Hidden,
		Deleted: g.Deleted,
	}
	for _, c := range g.Categories {
		group.Categories = append(group.Categories, c.toDomain())
	}
	return group
}

func (c category) toDomain() core.Category {
	cat := core.Category{
		ID:                c.ID,
		Name:              c.Name,
		CategoryGroupName: strOrEmpty(c.CategoryGroupName),
		Budgeted:          core.Milliunits(c.Budgeted),
		Balance:           core.Milliunits(c.Balance),
		GoalCadence:       c.GoalCadence,
		Hidden:            c.Hidden,
	}
	if c.GoalTarget != nil {
		target := core.Milliunits(*c.GoalTarget)
		cat.GoalTarget = &target
	}
	return cat
}

func (t transaction) toDomain() core.Transaction {
	txn := core.Transaction{
		ID:           t.ID,
		Date:         t.Date,
		Amount:       core.Milliunits(t.Amount),
		PayeeName:    strOrEmpty(t.PayeeName),
		CategoryName: strOrEmpty(t.CategoryName),
	}
	for _, s := range t.Subtransactions {
		txn.Subtransactions = append(txn.Subtransactions, core.SubTransaction{
			Amount:       core.Milliunits(s.Amount),
			PayeeName:    strOrEmpty(s.PayeeName),
			CategoryName: strOrEmpty(s.CategoryName),
		})
	}
	return txn
}
