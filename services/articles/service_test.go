package articles

import (
	"context"
	"errors"
	"testing"

	"github.com/spacebio/articles-api/models"
	"github.com/spacebio/articles-api/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeArticleRepo struct {
	articles []models.Article
	byID     map[int64]*models.Article
	err      error
}

func (f *fakeArticleRepo) FindAll(_ context.Context) ([]models.Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.articles, nil
}

func (f *fakeArticleRepo) FindByID(_ context.Context, id int64) (*models.Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

func TestList(t *testing.T) {
	repo := &fakeArticleRepo{articles: []models.Article{
		{ArticleID: 1, Title: "Arabidopsis in Orbit", Link: "https://pmc.ncbi.nlm.nih.gov/1"},
		{ArticleID: 2, Title: "Bone Density Studies", Link: "https://pmc.ncbi.nlm.nih.gov/2"},
	}}
	svc := NewService(repo, zap.NewNop())

	articles, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, articles, 2)
}

func TestListEmptyCorpus(t *testing.T) {
	svc := NewService(&fakeArticleRepo{}, zap.NewNop())

	articles, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, articles)
	assert.Empty(t, articles)
}

func TestListRepositoryFailure(t *testing.T) {
	svc := NewService(&fakeArticleRepo{err: errors.New("session expired")}, zap.NewNop())

	_, err := svc.List(context.Background())

	require.Error(t, err)
	assert.False(t, services.IsNotFoundError(err))
}

func TestGet(t *testing.T) {
	article := &models.Article{
		ArticleID: 7,
		Title:     "Mice in Bion-M 1",
		Link:      "https://pmc.ncbi.nlm.nih.gov/7",
		Chunks:    []models.Chunk{{ChunkID: 1, Text: "chunk text"}},
		Entities:  []models.Entity{{Name: "Mus musculus", Type: "organism"}},
	}
	svc := NewService(&fakeArticleRepo{byID: map[int64]*models.Article{7: article}}, zap.NewNop())

	got, err := svc.Get(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, article, got)
}

func TestGetNotFound(t *testing.T) {
	svc := NewService(&fakeArticleRepo{byID: map[int64]*models.Article{}}, zap.NewNop())

	_, err := svc.Get(context.Background(), 99)

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrArticleNotFound))
	assert.True(t, services.IsNotFoundError(err))
}
