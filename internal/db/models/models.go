package models

// Question is a row of the questions table.
type Question struct {
	ID         int64  `db:"id"`
	Question   string `db:"question"`
	Answer     string `db:"answer"`
	Category   int64  `db:"category"`
	Difficulty int32  `db:"difficulty"`
}

// Category is a row of the categories table.
type Category struct {
	ID   int64  `db:"id"`
	Type string `db:"type"`
}

// InsertQuestionParams carries the columns set on insert.
type InsertQuestionParams struct {
	Question   string
	Answer     string
	Category   int64
	Difficulty int32
}

// ListQuestionsExcludingParams filters the quiz candidate pool.
// CategoryID 0 matches every category.
type ListQuestionsExcludingParams struct {
	CategoryID int64
	ExcludeIDs []int64
}
