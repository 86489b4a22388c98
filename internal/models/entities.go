package models

// NewThread is a validated thread creation payload.
type NewThread struct {
	Title string
	Body  string
}

// NewComment is a validated comment creation payload.
type NewComment struct {
	Content string
}

// NewReply is a validated reply creation payload.
type NewReply struct {
	Content string
}

// AddedThread is what callers get back after a thread is stored.
type AddedThread struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Owner string `json:"owner"`
}

type AddedComment struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Owner   string `json:"owner"`
}

type AddedReply struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Owner   string `json:"owner"`
}
