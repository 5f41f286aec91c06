package github

import "time"

type User struct {
	Login string `json:"login"`
}

type Branch struct {
	Ref string `json:"ref"`
}

type PullRequest struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	HTMLURL   string    `json:"html_url"`
	State     string    `json:"state"`
	Draft     bool      `json:"draft"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `json:"user"`
	Head      Branch    `json:"head"`
}

type Commit struct {
	SHA    string     `json:"sha"`
	Commit CommitData `json:"commit"`
}

type CommitData struct {
	Message   string `json:"message"`
	Committer struct {
		Name string    `json:"name"`
		Date time.Time `json:"date"`
	} `json:"committer"`
}

type FileContent struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	SHA      string `json:"sha"`
	Encoding string `json:"encoding"`
	Content  string `json:"content"`
}
