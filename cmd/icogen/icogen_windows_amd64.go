//go:build windows && amd64

//go:generate go run . --arch=amd64 --syso=./winresources/rsrc_windows_amd64.syso --output=./winresources/icogen.ico --pad ../../assets/icogen.png

package main

import _ "icogen/cmd/icogen/winresources"
