package models

// Migratable returns every persisted model in dependency order
func Migratable() []interface{} {
	return []interface{}{
		&User{},
		&Session{},
		&Client{},
		&Folder{},
		&Task{},
		&Hearing{},
		&Movement{},
		&FolderDocument{},
		&Invoice{},
		&ClientRequest{},
		&AuditLog{},
	}
}
