// Package winresources is used to embed Windows resources into icogen.exe.
//
// The only resource is the application icon. The resource object files are
// produced by icogen itself through the go:generate directives in
// cmd/icogen, one rsrc_windows_<arch>.syso per architecture, and are linked
// in automatically when building for Windows.
package winresources
