// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

// AsciiArtLogo is the application's banner shown in the root command help.
const AsciiArtLogo = `       _     _
__   _(_) __| |_ __ ___   __ _ _ __
\ \ / / |/ _` + "`" + ` | '_ ` + "`" + ` _ \ / _` + "`" + ` | '_ \
 \ V /| | (_| | | | | | | (_| | | | |
  \_/ |_|\__,_|_| |_| |_|\__,_|_| |_|`
