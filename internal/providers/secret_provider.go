package providers

import (
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

var ErrNoProject = errors.New("GOOGLE_CLOUD_PROJECT not set")

// SecretFetcher returns the latest version of a named secret.
type SecretFetcher func(ctx context.Context, name string) (string, error)

// NewSecretManagerFetcher reads secrets from Google Secret Manager in the
// project named by GOOGLE_CLOUD_PROJECT.
func NewSecretManagerFetcher() SecretFetcher {
	return func(ctx context.Context, name string) (string, error) {
		projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
		if projectID == "" {
			return "", ErrNoProject
		}

		client, err := secretmanager.NewClient(ctx)
		if err != nil {
			return "", fmt.Errorf("secret manager client: %w", err)
		}
		defer client.Close()

		result, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
			Name: fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, name),
		})
		if err != nil {
			return "", fmt.Errorf("access secret %s: %w", name, err)
		}
		return strings.TrimSpace(string(result.GetPayload().GetData())), nil
	}
}
