package main

import (
	"bufrunner/pkg/bufrunner"
	"bufrunner/suites/example"
)

func main() {
	suite := bufrunner.CreateSuite("example")

	suite.AddGroup(&example.OutcomesGroup{})
	suite.AddGroup(&example.FixtureGroup{})

	suite.Run()
}
