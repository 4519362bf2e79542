package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matthieukhl/toposhop/internal/models"
)

func TestSiteHoldsAndReplacesContent(t *testing.T) {
	site := NewSite(models.DefaultSiteData())
	assert.Equal(t, "L'Oeil Du Topo Consulting", site.Data().CompanyName)
	assert.NotEmpty(t, site.Data().Services)

	site.SetData(models.SiteData{CompanyName: "Another Shop"})
	assert.Equal(t, "Another Shop", site.Data().CompanyName)
	assert.Empty(t, site.Data().Services)
}
