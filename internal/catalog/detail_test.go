package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/course-catalog-agent/internal/types"
)

const detailPage = `
	<html><body>
		<h1 class="product_title entry-title">Zangles</h1>
		<div class="meta_values">Docent: <a href="#">Iemand</a></div>
		<div class="meta_values">Categorie: <a href="#">Muziek,</a><a href="#">Dans,</a></div>
		<div class="wpb_wrapper">
			<p>Leer zingen.</p>
			<div><p>Voor beginners en gevorderden.</p></div>
		</div>
		<div class="product_main_data">
			<table>
				<tr><td>tijd</td><td>prijs</td></tr>
				<tr><td>di 18:00 - 20:00</td><td>€100</td></tr>
				<tr><td>cursus type</td><td>cursusnummer</td></tr>
				<tr><td>Fysiek</td><td>12345</td></tr>
			</table>
			<a class="register_link" href="#">Schrijf je in</a>
			<table>
				<tr><td>tijd</td><td>prijs</td></tr>
				<tr><td>do 20:00 - 22:00</td><td>€110</td></tr>
			</table>
			<a class="register_link" href="#">Vol</a>
		</div>
	</body></html>
`

func TestExtractDetail_FullPage(t *testing.T) {
	doc := parseDoc(t, detailPage)

	info, offerings, err := ExtractDetail(doc, "https://example.com/cursus/zangles", nil)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/cursus/zangles", info.URL)
	assert.Equal(t, "Zangles", info.Name)
	assert.Equal(t, "Muziek / Dans", info.Category)
	assert.Equal(t, "Leer zingen.\n\nVoor beginners en gevorderden.", info.Description)

	require.Len(t, offerings, 2)

	first := offerings[0]
	assert.Equal(t, "Zangles", first.CourseName)
	assert.Equal(t, "di", first.Day)
	assert.Equal(t, "18:00 - 20:00", first.Time)
	assert.Equal(t, "di 18:00 - 20:00", first.DayTime)
	assert.Equal(t, first.Day+" "+first.Time, first.DayTime)
	assert.Equal(t, "€100", first.Price)
	assert.Equal(t, "12345", first.CourseNumber)
	assert.Equal(t, "Fysiek", first.Type)
	assert.Equal(t, types.StatusOpen, first.Status)

	second := offerings[1]
	assert.Equal(t, "do", second.Day)
	assert.Equal(t, "20:00 - 22:00", second.Time)
	assert.Equal(t, types.StatusFull, second.Status)
	assert.Equal(t, "", second.Type, "missing type column defaults to empty")
}

func TestExtractDetail_MissingTitleIsSchemaDrift(t *testing.T) {
	doc := parseDoc(t, `<html><body><div class="meta_values">Categorie: <a>Muziek,</a></div></body></html>`)

	_, _, err := ExtractDetail(doc, "https://example.com/cursus/x", nil)

	var drift *SchemaDriftError
	require.ErrorAs(t, err, &drift)
	assert.Equal(t, "https://example.com/cursus/x", drift.URL)
}

func TestExtractDetail_MissingCategoryIsSchemaDrift(t *testing.T) {
	doc := parseDoc(t, `
		<html><body>
			<h1 class="product_title entry-title">Zangles</h1>
			<div class="meta_values">Docent: <a href="#">Iemand</a></div>
		</body></html>
	`)

	_, _, err := ExtractDetail(doc, "https://example.com/cursus/zangles", nil)

	var drift *SchemaDriftError
	require.ErrorAs(t, err, &drift)
}

func TestExtractDetail_MalformedScheduleFailsTheCourse(t *testing.T) {
	doc := parseDoc(t, `
		<html><body>
			<h1 class="product_title entry-title">Dansles</h1>
			<div class="meta_values">Categorie: <a href="#">Dans,</a></div>
			<div class="product_main_data">
				<table>
					<tr><td>tijd</td></tr>
					<tr><td>ma en wo van 19:00 - 21:00</td></tr>
				</table>
				<a class="register_link" href="#">Schrijf je in</a>
			</div>
		</body></html>
	`)

	_, offerings, err := ExtractDetail(doc, "https://example.com/cursus/dansles", nil)
	assert.Nil(t, offerings)

	var malformed *MalformedScheduleError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "ma en wo van 19:00 - 21:00", malformed.Value)
}

func TestExtractDetail_NoTablesYieldsNoOfferings(t *testing.T) {
	doc := parseDoc(t, `
		<html><body>
			<h1 class="product_title entry-title">Zangles</h1>
			<div class="meta_values">Categorie: <a href="#">Muziek,</a></div>
			<div class="product_main_data"></div>
		</body></html>
	`)

	info, offerings, err := ExtractDetail(doc, "https://example.com/cursus/zangles", nil)
	require.NoError(t, err)
	assert.Equal(t, "Zangles", info.Name)
	assert.Empty(t, offerings)
}

func TestExtractDetail_ExcessTablesAreDropped(t *testing.T) {
	// Two tables but only one register link: only min(count) pairs are
	// processed, mirroring the site's historic layout.
	doc := parseDoc(t, `
		<html><body>
			<h1 class="product_title entry-title">Keramiek</h1>
			<div class="meta_values">Categorie: <a href="#">Beeldend,</a></div>
			<div class="product_main_data">
				<table>
					<tr><td>tijd</td></tr>
					<tr><td>wo 10:00 - 12:00</td></tr>
				</table>
				<table>
					<tr><td>tijd</td></tr>
					<tr><td>vr 10:00 - 12:00</td></tr>
				</table>
				<a class="register_link" href="#">Schrijf je in</a>
			</div>
		</body></html>
	`)

	_, offerings, err := ExtractDetail(doc, "https://example.com/cursus/keramiek", nil)
	require.NoError(t, err)
	require.Len(t, offerings, 1)
	assert.Equal(t, "wo", offerings[0].Day)
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		text string
		want types.Status
	}{
		{"Vol", types.StatusFull},
		{"Cursus is al gestart", types.StatusStarted},
		{"Schrijf je in", types.StatusOpen},
		{"", types.StatusOpen},
		// "vol" wins over "gestart" when both match
		{"Gestart en vol", types.StatusFull},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, deriveStatus(tt.text), "text %q", tt.text)
	}
}

func TestTrimLastRune(t *testing.T) {
	assert.Equal(t, "Muziek", trimLastRune("Muziek,"))
	assert.Equal(t, "Dans", trimLastRune("Dans,"))
	assert.Equal(t, "", trimLastRune(""))
}
