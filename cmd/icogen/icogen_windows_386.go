//go:build windows && 386

//go:generate go run . --arch=386 --syso=./winresources/rsrc_windows_386.syso --output=./winresources/icogen.ico --pad ../../assets/icogen.png

package main

import _ "icogen/cmd/icogen/winresources"
