package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/storage"
)

func TestSweep_ReportsOnlyUnreferencedFiles(t *testing.T) {
	setupDisk(t)
	stage(t, "ref.jpg", "orphan-1.jpg", "orphan-2.jpg")

	repo := &mockProductRepo{}
	repo.On("AssetNames", mock.Anything).Return(map[string]struct{}{"ref.jpg": {}}, nil)

	report, err := services.NewSweepService(repo).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Scanned)
	assert.Equal(t, 1, report.Referenced)
	assert.Equal(t, []string{"orphan-1.jpg", "orphan-2.jpg"}, report.Orphans)

	// Report only: nothing is deleted.
	assert.True(t, storage.Exists("products/ref.jpg"))
	assert.True(t, storage.Exists("products/orphan-1.jpg"))
	assert.True(t, storage.Exists("products/orphan-2.jpg"))
}

func TestSweep_EmptyNamespaceHasNoOrphans(t *testing.T) {
	setupDisk(t)
	require.NoError(t, storage.MakeDirectory("products"))

	repo := &mockProductRepo{}
	repo.On("AssetNames", mock.Anything).Return(map[string]struct{}{}, nil)

	report, err := services.NewSweepService(repo).Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Scanned)
	assert.Empty(t, report.Orphans)
}
