package main

import (
	_ "git.tidepool.community/tidepool/tidepool/src/migration"
	"git.tidepool.community/tidepool/tidepool/src/website"
)

func main() {
	website.WebsiteCommand.Execute()
}
