package analysis

import (
	"strings"
	"testing"

	"github.com/dmitrijs2005/bimod/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCOE = `Report Name,Report ID,Query SQL,Report Owner
Sales,R1,"SELECT name FROM customers WHERE id = 1",alice
Sales Copy,R2,"select name from customers where id = 2",bob
Orders,R3,"SELECT o.id, SUM(o.total) FROM orders o JOIN customers c ON c.id = o.cid GROUP BY o.id",
Empty,R4,,alice
`

func TestProcessCOE(t *testing.T) {
	res, err := ProcessCOE(strings.NewReader(sampleCOE))
	require.NoError(t, err)

	assert.Empty(t, res.Error)
	assert.Equal(t, 4, res.ReportCount)
	assert.Equal(t, 2, res.UniqueCount)
	assert.Equal(t, 1, res.DuplicateCount)
	assert.Equal(t, map[string]int{CategorySimple: 4}, res.ComplexityDistribution)
	assert.Equal(t, 3.5, res.TotalEstimatedHours)
	assert.Equal(t, 1.8, res.AvgComplexity)
	assert.Equal(t, map[string]int{"alice": 2, "bob": 1, "Unknown": 1}, res.ReportsByOwner)

	require.Len(t, res.DuplicateGroups, 1)
	assert.Equal(t, models.COEDuplicateGroup{
		Similarity:     100,
		Type:           models.DuplicateExact,
		ReportNames:    []string{"Sales", "Sales Copy"},
		Recommendation: "Consolidate into single parameterized report",
	}, res.DuplicateGroups[0])

	require.Len(t, res.TopComplexReports, 4)
	assert.Equal(t, "Orders", res.TopComplexReports[0].ReportName)
	assert.Equal(t, 4.0, res.TopComplexReports[0].ComplexityScore)

	require.Len(t, res.Reports, 4)
	assert.Equal(t, "R3", res.Reports[2].ReportID)
}

func TestProcessCOE_AliasedColumnsAndMissingID(t *testing.T) {
	csv := "name,sql\nA,SELECT 1\nB,SELECT 2 FROM t JOIN u ON 1=1\n"
	res, err := ProcessCOE(strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, res.Reports, 2)
	assert.Equal(t, "0", res.Reports[0].ReportID)
	assert.Equal(t, "1", res.Reports[1].ReportID)
	assert.Equal(t, map[string]int{"Unknown": 2}, res.ReportsByOwner)
}

func TestProcessCOE_NoSQLColumn(t *testing.T) {
	res, err := ProcessCOE(strings.NewReader("Name,Owner\nx,y\n"))
	require.NoError(t, err)
	assert.Equal(t, ErrNoSQLColumn.Error(), res.Error)
	assert.Zero(t, res.ReportCount)

	res, err = ProcessCOE(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, ErrNoSQLColumn.Error(), res.Error)
}

func TestProcessCOE_TopListIsCapped(t *testing.T) {
	var b strings.Builder
	b.WriteString("Report Name,Query SQL\n")
	for i := 0; i < 15; i++ {
		b.WriteString("r,\"SELECT x")
		b.WriteString(strings.Repeat(" JOIN t ON 1=1", i))
		b.WriteString("\"\n")
	}
	res, err := ProcessCOE(strings.NewReader(b.String()))
	require.NoError(t, err)

	require.Len(t, res.TopComplexReports, 10)
	assert.Equal(t, 29.0, res.TopComplexReports[0].ComplexityScore)
}
