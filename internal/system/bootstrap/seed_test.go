package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/crmstack/contact-data-service/internal/template/model"
)

type mockTemplateService struct {
	mock.Mock
}

func (m *mockTemplateService) CreateTemplate(definition *model.TemplateDefinition) (*model.Template, error) {
	args := m.Called(definition)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Template), args.Error(1)
}

func (m *mockTemplateService) GetTemplate(templateId string) (*model.Template, error) {
	args := m.Called(templateId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Template), args.Error(1)
}

func (m *mockTemplateService) ListTemplates() ([]model.Template, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Template), args.Error(1)
}

func (m *mockTemplateService) ReplaceTemplate(templateId string, definition *model.TemplateDefinition) (
	*model.Template, error) {
	args := m.Called(templateId, definition)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Template), args.Error(1)
}

func (m *mockTemplateService) DeleteTemplate(templateId string) error {
	return m.Called(templateId).Error(0)
}

func (m *mockTemplateService) SeedBuiltinTemplate(definition *model.TemplateDefinition) error {
	return m.Called(definition).Error(0)
}

func TestSeedBuiltinTemplatesInstallsDefinitionsInOrder(t *testing.T) {

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "02_lieferanten.json"),
		[]byte(`{"name": "Lieferanten", "groups": []}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "01_kunden.json"),
		[]byte(`{"name": "Kunden", "groups": [{"name": "Allgemein", "properties": [{"name": "Vorname", "data_type": "text"}]}]}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("ignored"), 0o600))

	svc := new(mockTemplateService)
	var seeded []string
	svc.On("SeedBuiltinTemplate", mock.AnythingOfType("*model.TemplateDefinition")).
		Run(func(args mock.Arguments) {
			seeded = append(seeded, args.Get(0).(*model.TemplateDefinition).Name)
		}).Return(nil)

	err := SeedBuiltinTemplates(dir, svc)

	require.NoError(t, err)
	assert.Equal(t, []string{"Kunden", "Lieferanten"}, seeded)
}

func TestSeedBuiltinTemplatesMissingDirIsNoop(t *testing.T) {

	svc := new(mockTemplateService)

	err := SeedBuiltinTemplates(filepath.Join(t.TempDir(), "nope"), svc)

	require.NoError(t, err)
	svc.AssertNotCalled(t, "SeedBuiltinTemplate", mock.Anything)
}

func TestSeedBuiltinTemplatesBrokenDefinitionFails(t *testing.T) {

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o600))

	err := SeedBuiltinTemplates(dir, new(mockTemplateService))

	require.Error(t, err)
}
