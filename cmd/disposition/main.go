package main

import (
	"oss.terrastruct.com/util-go/xmain"

	"github.com/azriel91/disposition-sub001/dispcli"
)

func main() {
	xmain.Main(dispcli.Run)
}
