package domain

import "time"

// User represents a registered account. The phone number is the login key.
type User struct {
	ID           uint
	PhoneNumber  string
	FullName     string
	Email        string
	PasswordHash string
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserProfile is the public projection of a User. It never carries the password hash.
type UserProfile struct {
	ID          uint      `json:"id"`
	PhoneNumber string    `json:"phone_number"`
	FullName    string    `json:"full_name"`
	Email       *string   `json:"email"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// Profile returns the public projection of the user
func (u *User) Profile() *UserProfile {
	p := &UserProfile{
		ID:          u.ID,
		PhoneNumber: u.PhoneNumber,
		FullName:    u.FullName,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	}
	if u.Email != "" {
		email := u.Email
		p.Email = &email
	}
	return p
}

// RegisterInput carries registration data before validation
type RegisterInput struct {
	PhoneNumber string `json:"phone_number"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// AuthResult represents authentication outcome
type AuthResult struct {
	User        *UserProfile
	AccessToken string
	TokenType   string
	ExpiresIn   int64
}

// FormSubmission is a form filed by a single owning user
type FormSubmission struct {
	ID          uint                   `json:"id"`
	UserID      uint                   `json:"user_id"`
	FormType    FormType               `json:"form_type"`
	Title       string                 `json:"title"`
	Description *string                `json:"description"`
	Category    *Category              `json:"category"`
	Priority    Priority               `json:"priority"`
	Status      Status                 `json:"status"`
	FormData    map[string]interface{} `json:"form_data"`
	Attachments []string               `json:"attachments"`
	SubmittedAt time.Time              `json:"submitted_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// SubmissionDraft carries the fields of a new submission before validation.
// Enumerated fields arrive as raw strings and are parsed by the lifecycle manager.
type SubmissionDraft struct {
	FormType    string                 `json:"form_type"`
	Title       string                 `json:"title"`
	Description *string                `json:"description"`
	Category    *string                `json:"category"`
	Priority    *string                `json:"priority"`
	FormData    map[string]interface{} `json:"form_data"`
	Attachments []string               `json:"attachments"`
}

// SubmissionPatch is a partial update. A nil field is absent and leaves the stored value untouched.
type SubmissionPatch struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Category    *string                `json:"category"`
	Priority    *string                `json:"priority"`
	Status      *string                `json:"status"`
	FormData    map[string]interface{} `json:"form_data"`
	Attachments []string               `json:"attachments"`
}

// SubmissionQuery holds listing filters and pagination as received from the caller
type SubmissionQuery struct {
	Skip     int    `json:"skip"`
	Limit    int    `json:"limit"`
	Status   string `json:"status"`
	FormType string `json:"form_type"`
}

// SubmissionFilter is the validated store-level form of a SubmissionQuery.
// UserID is always set; the store never lists across owners.
type SubmissionFilter struct {
	UserID   uint
	Status   *Status
	FormType *FormType
	Offset   int
	Limit    int
}
