package config

const (
	dataCiteAPIURLVar       = "DATACITE_API_URL"
	dataCitePrefixVar       = "DATACITE_PREFIX"
	dataCiteHandleURLVar    = "DATACITE_HANDLE_URL"
	dataCiteRepositoryIDVar = "DATACITE_REPOSITORY_ID"
	dataCitePasswordVar     = "DATACITE_PASSWORD"
)

// DataCite holds the settings for the DOI registry. Unset values fall back
// to the DataCite test environment outside production.
type DataCite struct{}

func (DataCite) GetDataCiteAPIURL() string {
	return withDevDefault(dataCiteAPIURLVar, "https://api.test.datacite.org")
}

func (DataCite) GetDataCitePrefix() string {
	return withDevDefault(dataCitePrefixVar, "10.xxxxx")
}

func (DataCite) GetDataCiteHandleURL() string {
	return withDevDefault(dataCiteHandleURLVar, "https://handle.stage.datacite.org")
}

// GetDataCiteRepositoryID is required in every environment.
func (DataCite) GetDataCiteRepositoryID() (string, error) {
	return GetEnvOrDie(dataCiteRepositoryIDVar)
}

// GetDataCitePassword is required in every environment.
func (DataCite) GetDataCitePassword() (string, error) {
	return GetEnvOrDie(dataCitePasswordVar)
}

func withDevDefault(envVar, devDefault string) string {
	value, _ := GetEnvOrDieInProduction(envVar)
	if value == "" {
		return devDefault
	}
	return value
}
