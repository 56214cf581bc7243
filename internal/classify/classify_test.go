package classify_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnnews/crawler/internal/classify"
	"github.com/vnnews/crawler/internal/config"
	"github.com/vnnews/crawler/internal/domain"
	"github.com/vnnews/crawler/internal/logger"
)

// fakeCategories records GetOrCreate calls and hands back stable ids.
type fakeCategories struct {
	calls  []string
	slugs  map[string]string
	nextID int64
	byName map[string]*domain.Category
}

func (f *fakeCategories) GetOrCreate(_ context.Context, name, categorySlug string) (*domain.Category, error) {
	f.calls = append(f.calls, name)
	if f.slugs == nil {
		f.slugs = map[string]string{}
	}
	f.slugs[name] = categorySlug

	if f.byName == nil {
		f.byName = map[string]*domain.Category{}
	}
	if cat, ok := f.byName[name]; ok {
		return cat, nil
	}

	f.nextID++
	cat := &domain.Category{ID: f.nextID, Name: name, Slug: categorySlug}
	f.byName[name] = cat
	return cat, nil
}

func testClassifierConfig() config.ClassifierConfig {
	return config.ClassifierConfig{
		Default: "Tin tức",
		Rules: []config.ClassifierRule{
			{Keywords: []string{"bóng đá", "thể thao"}, Category: "Thể thao"},
			{Keywords: []string{"kinh tế", "chứng khoán"}, Category: "Kinh tế"},
		},
	}
}

func TestClassify_KeywordMatch(t *testing.T) {
	t.Parallel()

	store := &fakeCategories{}
	c := classify.New(testClassifierConfig(), store, logger.NewNoop())

	cat, err := c.Classify(context.Background(), "Đội tuyển Việt Nam thắng trận Bóng Đá tối qua")
	require.NoError(t, err)

	assert.Equal(t, "Thể thao", cat.Name)
	assert.Equal(t, "the-thao", store.slugs["Thể thao"])
}

func TestClassify_FirstRuleWinsOnOverlap(t *testing.T) {
	t.Parallel()

	store := &fakeCategories{}
	c := classify.New(testClassifierConfig(), store, logger.NewNoop())

	cat, err := c.Classify(context.Background(), "thể thao và kinh tế cùng một bài")
	require.NoError(t, err)

	assert.Equal(t, "Thể thao", cat.Name)
}

func TestClassify_NoMatchFallsToDefault(t *testing.T) {
	t.Parallel()

	store := &fakeCategories{}
	c := classify.New(testClassifierConfig(), store, logger.NewNoop())

	cat, err := c.Classify(context.Background(), "chuyện đời thường không khớp luật nào")
	require.NoError(t, err)

	assert.Equal(t, "Tin tức", cat.Name)
	assert.Equal(t, "tin-tuc", store.slugs["Tin tức"])
}

func TestClassify_EmptyTextUsesDefault(t *testing.T) {
	t.Parallel()

	store := &fakeCategories{}
	c := classify.New(testClassifierConfig(), store, logger.NewNoop())

	cat, err := c.Classify(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "Tin tức", cat.Name)
}

func TestClassify_SameCategoryReused(t *testing.T) {
	t.Parallel()

	store := &fakeCategories{}
	c := classify.New(testClassifierConfig(), store, logger.NewNoop())

	first, err := c.Classify(context.Background(), "tin bóng đá")
	require.NoError(t, err)
	second, err := c.Classify(context.Background(), "lại bóng đá")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}
