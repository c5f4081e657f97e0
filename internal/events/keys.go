package events

import "fmt"

// PresentCounterKey is the redis key holding the number of employees
// marked present for a department on a given date. The consumer writes
// it, the attendance API reads it.
func PresentCounterKey(departmentID, date string) string {
	return fmt.Sprintf("attendance:present:%s:%s", departmentID, date)
}
