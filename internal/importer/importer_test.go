// file: internal/importer/importer_test.go
// version: 1.0.0
// guid: 58af3956-e2f8-40f4-b73d-36c271bdeec5

package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acikyardim/yardim-paneli/internal/database"
)

func TestImportBeneficiaries(t *testing.T) {
	store := database.NewMockStore()
	csvData := strings.Join([]string{
		"name,phone,city,status,household_size",
		"Ahmet Yılmaz,+905551112233,İstanbul,active,4",
		"Ayşe Demir,+905551112234,Ankara,pending,2",
	}, "\n")

	result, err := ImportBeneficiaries(strings.NewReader(csvData), store, "org1", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Skipped)

	items, err := store.ListBeneficiaries("org1")
	require.NoError(t, err)
	require.Len(t, items, 2)
}

func TestImportBeneficiariesSkipsBadRows(t *testing.T) {
	store := database.NewMockStore()
	csvData := strings.Join([]string{
		"name,status,household_size",
		"Geçerli Kişi,active,3",
		",active,1",
		"Bozuk Durum,bilinmiyor,1",
		"Bozuk Sayı,active,çok",
	}, "\n")

	result, err := ImportBeneficiaries(strings.NewReader(csvData), store, "org1", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 3, result.Skipped)
	assert.Len(t, result.Errors, 3)
}

func TestImportBeneficiariesColumnOrderFree(t *testing.T) {
	store := database.NewMockStore()
	csvData := "city,name\nİzmir,Deneme Kişi\n"

	result, err := ImportBeneficiaries(strings.NewReader(csvData), store, "org1", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)

	items, _ := store.ListBeneficiaries("org1")
	require.Len(t, items, 1)
	assert.Equal(t, "İzmir", items[0].City)
	assert.Equal(t, "Deneme Kişi", items[0].Name)
}

func TestImportBeneficiariesRejectsMissingNameColumn(t *testing.T) {
	store := database.NewMockStore()
	_, err := ImportBeneficiaries(strings.NewReader("phone,city\n1,2\n"), store, "org1", nil)
	require.Error(t, err)
}

func TestImportBeneficiariesEmptyFile(t *testing.T) {
	store := database.NewMockStore()
	_, err := ImportBeneficiaries(strings.NewReader(""), store, "org1", nil)
	require.Error(t, err)
}

func TestImportBeneficiariesProgress(t *testing.T) {
	store := database.NewMockStore()
	csvData := "name\nBir\nİki\nÜç\n"

	calls := 0
	_, err := ImportBeneficiaries(strings.NewReader(csvData), store, "org1", func(int) { calls++ })
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}
