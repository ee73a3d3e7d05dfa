package firestore

import (
	"context"
	"fmt"

	gfs "cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"github.com/couchcryptid/pothole-data-api/internal/config"
)

// NewClient initializes a Firebase app from the service-account JSON in the
// config and opens its Firestore client. With FIRESTORE_EMULATOR_HOST set the
// SDK routes to the emulator and credentials may be omitted.
func NewClient(ctx context.Context, cfg *config.Config) (*gfs.Client, error) {
	var opts []option.ClientOption
	if cfg.FirebaseCredentials != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.FirebaseCredentials)))
	}

	var appCfg *firebase.Config
	if cfg.FirebaseProjectID != "" {
		appCfg = &firebase.Config{ProjectID: cfg.FirebaseProjectID}
	}

	app, err := firebase.NewApp(ctx, appCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("open firestore client: %w", err)
	}
	return client, nil
}
