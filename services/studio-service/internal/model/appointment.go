package model

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Appointment struct {
	ID        string `json:"id"`
	Service   string `json:"service"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Notes     string `json:"notes,omitempty"`
	Status    Status `json:"status"`
	CreatedAt string `json:"createdAt"`
}

type Client struct {
	ID           string   `json:"id"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Notes        string   `json:"notes,omitempty"`
	Appointments []string `json:"appointments"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt,omitempty"`
}

// HasAppointment reports whether id is already linked to the client.
func (c Client) HasAppointment(id string) bool {
	for _, a := range c.Appointments {
		if a == id {
			return true
		}
	}
	return false
}

// Treatment references its client by id only; it is owned by nothing.
type Treatment struct {
	ID              string  `json:"id"`
	ClientID        string  `json:"clientId"`
	Service         string  `json:"service"`
	Date            string  `json:"date"`
	Price           float64 `json:"price"`
	Notes           string  `json:"notes,omitempty"`
	BeforePhoto     string  `json:"beforePhoto,omitempty"`
	AfterPhoto      string  `json:"afterPhoto,omitempty"`
	NextAppointment string  `json:"nextAppointment,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

const PostStatusDraft = "draft"

type Post struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Image     string `json:"image,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}
