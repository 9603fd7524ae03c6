package model

// Cost categories, in display order.
const (
	CategoryHotel        = "Hotel"
	CategoryTransport    = "Transport"
	CategoryBreakfast    = "Breakfast"
	CategoryStudentMeals = "Student meals"
	CategoryMentorMeals  = "Mentor meals"
	CategoryActivities   = "Activities"
	CategoryFlights      = "Flights"
	CategoryExpenses     = "Custom expenses"
)

// ItemCost is the cost of one named catalog entry within a category.
type ItemCost struct {
	Name string  `json:"name" yaml:"name"`
	Cost float64 `json:"cost" yaml:"cost"`
}

// LineItem is one cost category split by cohort.
// StudentsCost + MentorsCost always equals Total.
type LineItem struct {
	Category     string     `json:"category" yaml:"category"`
	Total        float64    `json:"total" yaml:"total"`
	StudentsCost float64    `json:"students_cost" yaml:"students_cost"`
	MentorsCost  float64    `json:"mentors_cost" yaml:"mentors_cost"`
	Items        []ItemCost `json:"items,omitempty" yaml:"items,omitempty"`
}

// Rooms is the room allocation behind the hotel line.
type Rooms struct {
	StudentPairs   int `json:"student_pairs" yaml:"student_pairs"`
	StudentSingles int `json:"student_singles" yaml:"student_singles"`
	Mentor         int `json:"mentor" yaml:"mentor"`
	Total          int `json:"total" yaml:"total"`
}

// CostBreakdown holds every cost category and the summed totals.
type CostBreakdown struct {
	Hotel        LineItem `json:"hotel" yaml:"hotel"`
	Transport    LineItem `json:"transport" yaml:"transport"`
	Breakfast    LineItem `json:"breakfast" yaml:"breakfast"`
	StudentMeals LineItem `json:"student_meals" yaml:"student_meals"`
	MentorMeals  LineItem `json:"mentor_meals" yaml:"mentor_meals"`
	Activities   LineItem `json:"activities" yaml:"activities"`
	Flights      LineItem `json:"flights" yaml:"flights"`
	Expenses     LineItem `json:"expenses" yaml:"expenses"`

	Rooms Rooms `json:"rooms" yaml:"rooms"`

	Total         float64 `json:"total" yaml:"total"`
	StudentsTotal float64 `json:"students_total" yaml:"students_total"`
	MentorsTotal  float64 `json:"mentors_total" yaml:"mentors_total"`
}

// Lines returns the categories in display order.
func (c CostBreakdown) Lines() []LineItem {
	return []LineItem{
		c.Hotel,
		c.Transport,
		c.Breakfast,
		c.StudentMeals,
		c.MentorMeals,
		c.Activities,
		c.Flights,
		c.Expenses,
	}
}

// ShareResult is one stakeholder's slice of gross profit.
type ShareResult struct {
	Name        string  `json:"name" yaml:"name"`
	Percent     float64 `json:"percent" yaml:"percent"`
	TaxPercent  float64 `json:"tax_percent" yaml:"tax_percent"`
	ShareAmount float64 `json:"share_amount" yaml:"share_amount"`
	TaxOnShare  float64 `json:"tax_on_share" yaml:"tax_on_share"`
	NetAmount   float64 `json:"net_amount" yaml:"net_amount"`
}

// Distribution is gross profit split among stakeholders.
type Distribution struct {
	Shares           []ShareResult `json:"shares" yaml:"shares"`
	ShareSum         float64       `json:"share_sum" yaml:"share_sum"`
	SharesValid      bool          `json:"shares_valid" yaml:"shares_valid"`
	TotalTaxOnShares float64       `json:"total_tax_on_shares" yaml:"total_tax_on_shares"`
	NetProfit        float64       `json:"net_profit" yaml:"net_profit"`
}

// Revenue is student revenue with the revenue tax layered on.
type Revenue struct {
	Total    float64 `json:"total" yaml:"total"`
	Tax      float64 `json:"tax" yaml:"tax"`
	AfterTax float64 `json:"after_tax" yaml:"after_tax"`
}

// BudgetResult is the derived output of one engine run. It is never stored
// as the source of truth; snapshots keep it only for comparison.
type BudgetResult struct {
	Costs        CostBreakdown `json:"costs" yaml:"costs"`
	TotalCost    float64       `json:"total_cost" yaml:"total_cost"`
	Revenue      Revenue       `json:"revenue" yaml:"revenue"`
	GrossProfit  float64       `json:"gross_profit" yaml:"gross_profit"`
	Distribution Distribution  `json:"distribution" yaml:"distribution"`
	NetProfit    float64       `json:"net_profit" yaml:"net_profit"`

	CostPerStudent       float64 `json:"cost_per_student" yaml:"cost_per_student"`
	MarginPercent        float64 `json:"margin_percent" yaml:"margin_percent"`
	MarginPerStudent     float64 `json:"margin_per_student" yaml:"margin_per_student"`
	BreakEvenPrice       float64 `json:"break_even_price" yaml:"break_even_price"`
	MentorCostPerStudent float64 `json:"mentor_cost_per_student" yaml:"mentor_cost_per_student"`
}
