package wlr_layer_shell

//go:generate go run github.com/rajveermalviya/go-wayland/cmd/go-wayland-scanner -pkg wlr_layer_shell -prefix zwlr -suffix v1 -o layer_shell.go -i https://gitlab.freedesktop.org/wlroots/wlr-protocols/-/raw/master/unstable/wlr-layer-shell-unstable-v1.xml
