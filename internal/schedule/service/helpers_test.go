package service_test

import "time"

func nowStamp() time.Time {
	return time.Now().UTC()
}
