package domain

// Session is the server-held Session/Role Context behind the sid cookie.
type Session struct {
	ID             string `db:"id" json:"id"`
	Username       string `db:"username" json:"username"`
	Role           Role   `db:"role" json:"role"`
	PhotographerID string `db:"photographer_id" json:"photographer_id,omitempty"`
	CreatedAt      string `db:"created_at" json:"created_at"`
}

// TimeLayout is the layout of every stored timestamp.
const TimeLayout = "2006-01-02 15:04:05"
