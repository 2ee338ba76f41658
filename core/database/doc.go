// Package database handles database connections and schema inspection.
//
// It wraps GORM to open either MySQL or SQLite based on the application's
// configuration. The inventory can load its three input tables from a
// database instead of flat files; the inspector verifies those tables carry
// the expected columns before any row is read.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "price_list", []string{"id", "price"})
package database
