package indicator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"
)

type SchemaTestSuite struct {
	suite.Suite
}

func TestSchemaSuite(t *testing.T) {
	suite.Run(t, new(SchemaTestSuite))
}

func (suite *SchemaTestSuite) TestSchemaOnlyListsAcceptedOptions() {
	schemaJSON, err := macdDescriptor().SchemaJSON()
	suite.Require().NoError(err)

	var decoded struct {
		Title      string                    `json:"title"`
		Properties map[string]map[string]any `json:"properties"`
	}
	suite.Require().NoError(json.Unmarshal([]byte(schemaJSON), &decoded))

	suite.Equal("Moving Average Convergence Divergence", decoded.Title)
	suite.Len(decoded.Properties, 3)
	suite.Contains(decoded.Properties, "fastPeriod")
	suite.Contains(decoded.Properties, "slowPeriod")
	suite.Contains(decoded.Properties, "signalPeriod")
	suite.NotContains(decoded.Properties, "period")

	suite.Equal(12.0, decoded.Properties["fastPeriod"]["default"])
	suite.Equal("integer", decoded.Properties["fastPeriod"]["type"])
}

func (suite *SchemaTestSuite) TestBollingerSchemaDefaults() {
	schema := bollingerBandsDescriptor().Schema()

	stdDev, ok := schema.Properties.Get("stdDev")
	suite.Require().True(ok)
	suite.Equal(2.0, stdDev.Default)
	suite.Equal("number", stdDev.Type)
}
