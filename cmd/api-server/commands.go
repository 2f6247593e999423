package main

import (
	"Inkwell/service"

	"gorm.io/gorm"
)

// Commands carries what the maintenance subcommands need.
type Commands struct {
	DB        *gorm.DB
	Seed      service.ISeedService
	Reconcile service.IReconcileService
}
