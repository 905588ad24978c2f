package render

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"econcharts/internal/combine"
	"econcharts/internal/frame"
)

func yearlyTable(t *testing.T) *frame.Table {
	t.Helper()
	tbl := frame.NewTable(frame.Yearly, "Year", []time.Time{frame.Year(2020), frame.Year(2021), frame.Year(2022)})
	require.NoError(t, tbl.Set("GDP", frame.Values(14.69, 17.73, 17.88)))
	require.NoError(t, tbl.Set("Growth", []frame.Value{frame.Some(2.2), frame.Missing, frame.Some(3.0)}))
	return tbl
}

func emptyTable() *frame.Table {
	tbl := frame.NewTable(frame.Yearly, "Year", nil)
	_ = tbl.Set("GDP", nil)
	_ = tbl.Set("Growth", nil)
	return tbl
}

func TestPage_BarLine(t *testing.T) {
	page := NewPage("GDP")
	err := page.Add(Request{
		Title:          "China GDP",
		Kind:           KindBarLine,
		Y:              []string{"GDP"},
		Secondary:      []string{"Growth"},
		YLabel:         "trillion US$",
		SecondaryLabel: "%",
	}, yearlyTable(t))
	require.NoError(t, err)
	assert.Equal(t, 1, page.Len())

	var buf bytes.Buffer
	require.NoError(t, page.Render(&buf))
	out := buf.String()
	assert.Contains(t, out, "China GDP")
	assert.Contains(t, out, "2021")
	assert.Contains(t, out, `"-"`)
	assert.NotContains(t, out, NoData)
}

func TestPage_MissingColumn(t *testing.T) {
	page := NewPage("GDP")
	err := page.Add(Request{Title: "x", Kind: KindLine, Y: []string{"Nope"}}, yearlyTable(t))
	assert.Error(t, err)
	assert.Equal(t, 0, page.Len())
}

func TestPage_ScatterNotFromTable(t *testing.T) {
	err := NewPage("p").Add(Request{Kind: KindScatter}, yearlyTable(t))
	assert.Error(t, err)
}

func TestPage_EmptyInputs(t *testing.T) {
	page := NewPage("Empty")
	require.NoError(t, page.Add(Request{Title: "Lines", Kind: KindLine, Y: []string{"GDP"}}, emptyTable()))
	page.AddScatter(Request{Title: "Scatter", Kind: KindScatter}, nil)

	var buf bytes.Buffer
	require.NoError(t, page.Render(&buf))
	assert.Contains(t, buf.String(), NoData)
}

func TestPage_NoCharts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPage("Nothing").Render(&buf))
	assert.Contains(t, buf.String(), NoData)
}

func TestPage_Candlestick(t *testing.T) {
	days := []time.Time{frame.Date(2024, 1, 4), frame.Date(2024, 1, 5)}
	tbl := frame.NewTable(frame.Daily, "Date", days)
	for name, vals := range map[string][]float64{
		"Open": {10, 11}, "High": {12, 13}, "Low": {9, 10}, "Close": {11, 12}, "Volume": {500, 600}, "MA25": {0, 0},
	} {
		require.NoError(t, tbl.Set(name, frame.Values(vals...)))
	}

	page := NewPage("Prices")
	require.NoError(t, page.Add(Request{
		Title:    "Kuraray",
		Kind:     KindCandlestick,
		OHLC:     OHLC{Open: "Open", High: "High", Low: "Low", Close: "Close"},
		Overlays: []string{"MA25"},
		Volume:   "Volume",
	}, tbl))
	assert.Equal(t, 2, page.Len())

	var buf bytes.Buffer
	require.NoError(t, page.Render(&buf))
	assert.Contains(t, buf.String(), "2024-01-05")
	assert.Contains(t, buf.String(), "candlestick")
}

func TestPoints(t *testing.T) {
	s := &combine.Summaries{
		Metrics: []string{"m", "g"},
		Rows: []combine.Summary{
			{Entity: "A", Name: "Alpha", Means: map[string]frame.Value{"m": frame.Some(30), "g": frame.Some(5)}},
			{Entity: "B", Name: "Beta", Means: map[string]frame.Value{"m": frame.Some(20), "g": frame.Missing}},
		},
	}

	pts := Points(s, "m", "g")
	assert.Equal(t, []Point{{Label: "Alpha", X: 30, Y: 5}}, pts)
}

func TestPNG(t *testing.T) {
	var buf bytes.Buffer
	err := PNG(&buf, yearlyTable(t), []Panel{
		{Title: "GDP", Column: "GDP", YLabel: "trillion US$"},
		{Title: "Growth", Column: "Growth", YLabel: "%"},
	}, ImageOptions{Width: 6, Height: 4, DPI: 50})
	require.NoError(t, err)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestPNG_Empty(t *testing.T) {
	var buf bytes.Buffer
	err := PNG(&buf, emptyTable(), []Panel{{Title: "GDP", Column: "GDP"}}, ImageOptions{Width: 4, Height: 3, DPI: 50})
	require.NoError(t, err)
	_, err = png.Decode(&buf)
	assert.NoError(t, err)
}

func TestPNG_Errors(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, PNG(&buf, yearlyTable(t), nil, DefaultImageOptions))
	assert.Error(t, PNG(&buf, yearlyTable(t), []Panel{{Column: "Nope"}}, DefaultImageOptions))
}

func TestTable(t *testing.T) {
	tbl := frame.NewTable(frame.Yearly, "Year", []time.Time{frame.Year(2023), frame.Year(2024)})
	require.NoError(t, tbl.Set("Revenue", frame.Values(1234567.891, 2500000)))
	require.NoError(t, tbl.Set("Margin", []frame.Value{frame.Some(25.5), frame.Missing}))

	var buf bytes.Buffer
	require.NoError(t, Table(&buf, tbl, TableOptions{Title: "Financials", NewestFirst: true, Digits: 2}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Financials", lines[0])
	assert.Contains(t, lines[1], "Revenue")
	assert.Contains(t, lines[2], "2024")
	assert.Contains(t, lines[2], "2,500,000")
	assert.Contains(t, lines[2], "-")
	assert.Contains(t, lines[3], "1,234,567.89")
	assert.Contains(t, lines[3], "25.5")
}

func TestTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, emptyTable(), TableOptions{}))
	assert.Contains(t, buf.String(), NoData)
}

func TestCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "gdp.csv")
	require.NoError(t, CSV(path, yearlyTable(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, utf8BOM))

	lines := strings.Split(strings.TrimSpace(string(data[len(utf8BOM):])), "\n")
	assert.Equal(t, []string{"Year,GDP,Growth", "2020,14.69,2.2", "2021,17.73,", "2022,17.88,3"}, lines)
}

func TestCSV_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, CSV(path, emptyTable()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Year,GDP,Growth", strings.TrimSpace(string(data[len(utf8BOM):])))
}

func TestXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gdp.xlsx")
	require.NoError(t, XLSX(path, "GDP", yearlyTable(t)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("GDP")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Year", "GDP", "Growth"}, rows[0])
	assert.Equal(t, "14.69", rows[1][1])
}

func TestXLSX_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, XLSX(path, "", emptyTable()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, NoData, rows[1][0])
}

func TestChartKind_String(t *testing.T) {
	assert.Equal(t, "bar+line", KindBarLine.String())
	assert.Equal(t, "ChartKind(42)", ChartKind(42).String())
}
