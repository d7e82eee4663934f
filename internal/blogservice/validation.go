package blogservice

import (
	"regexp"

	"bloglist/internal/common"
)

var (
	URLRX = regexp.MustCompile(`^https?://\S+$`)
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 1, 200), "title", "must not be more than 200 characters long")
}

func validateURL(v *common.Validator, url string) {
	v.Check(url != "", "url", "must be provided")
	if url != "" {
		v.Check(URLRX.MatchString(url), "url", "must be a valid http or https URL")
	}
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
