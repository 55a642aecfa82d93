package userservice

// Profile профиль, возвращаемый user service
type Profile struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	Name string `json:"name"`
}
