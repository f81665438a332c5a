package appbootstrap

import (
	"go.mongodb.org/mongo-driver/mongo"

	"campusguard/api"
	"campusguard/config"
	"campusguard/core/notify"
	"campusguard/core/store"
	"campusguard/core/utils"
)

// ComposeRuntime wires the process-wide collaborators into the dependency
// set the HTTP server is constructed from.
func ComposeRuntime(cfg *config.AppConfig, client *mongo.Client, logger *utils.Logger) api.ServerDeps {
	db := client.Database(cfg.Store.Database)
	return api.ServerDeps{
		Reports:  store.NewReportsStore(db),
		Notifier: notify.NewMailer(cfg.Mail, logger),
		Client:   client,
	}
}
