//go:build windows && arm

//go:generate go run . --arch=arm --syso=./winresources/rsrc_windows_arm.syso --output=./winresources/icogen.ico --pad ../../assets/icogen.png

package main

import _ "icogen/cmd/icogen/winresources"
