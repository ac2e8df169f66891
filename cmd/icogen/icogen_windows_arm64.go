//go:build windows && arm64

//go:generate go run . --arch=arm64 --syso=./winresources/rsrc_windows_arm64.syso --output=./winresources/icogen.ico --pad ../../assets/icogen.png

package main

import _ "icogen/cmd/icogen/winresources"
