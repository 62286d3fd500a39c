package testsupport

import "fmt"

// SQLiteMemoryDSN returns a shared-cache in-memory sqlite DSN. Distinct names
// keep parallel tests from seeing each other's tables.
func SQLiteMemoryDSN(name string) string {
	if name == "" {
		name = "tripdata"
	}
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
}
