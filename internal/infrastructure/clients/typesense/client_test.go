package typesense

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anushahashmi071/CareGroup-sub001/pkg/config"
)

func TestClient_Integration(t *testing.T) {
	url := os.Getenv("TYPESENSE_TEST_URL")
	if url == "" {
		t.Skip("TYPESENSE_TEST_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := NewClient(ctx, &config.TypesenseConfig{
		URL:    url,
		APIKey: os.Getenv("TYPESENSE_TEST_API_KEY"),
	})
	require.NoError(t, err)

	require.NoError(t, client.InitSchema(ctx))
	// second call finds the collection
	require.NoError(t, client.InitSchema(ctx))

	collection, err := client.Client().Collection(DoctorsCollection).Retrieve(ctx)
	require.NoError(t, err)
	assert.Equal(t, DoctorsCollection, collection.Name)
}
