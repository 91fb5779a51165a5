// export_test.go exports private functions for white-box testing.
package domain

var PlatformFor = platformFor
