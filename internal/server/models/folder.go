package models

import "time"

// Folder groups files for one user. Folder membership is pure metadata;
// moving a file between folders never touches its stored blob.
type Folder struct {
	ID        string
	UserID    string
	Name      string
	CreatedAt time.Time
}
