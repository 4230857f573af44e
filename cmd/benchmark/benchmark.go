package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"sync"
	"time"

	"github.com/tmpim/retrolcd"
)

func main() {
	if len(os.Args) != 2 {
		panic("must have path to image")
	}

	data, err := ioutil.ReadFile(os.Args[1])
	if err != nil {
		panic(err)
	}

	conv := retrolcd.New(nil)
	reqs := []retrolcd.Request{
		retrolcd.DefaultRequest(retrolcd.Monochrome{}),
		retrolcd.DefaultRequest(retrolcd.LCD{Style: retrolcd.StyleGrid}),
		retrolcd.DefaultRequest(retrolcd.CRT{}),
	}

	wg := new(sync.WaitGroup)

	start := time.Now()
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				_, err := conv.Convert(data, reqs[(w+i)%len(reqs)])
				if err != nil {
					panic(err)
				}
			}
		}(w)
	}

	wg.Wait()
	fmt.Println("took:", time.Since(start))
}
