package domain

type TeamID string

type Team struct {
	ID      TeamID
	Name    string
	Members []Member
}
