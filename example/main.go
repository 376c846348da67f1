package main

import (
	"fmt"
	"time"

	"github.com/LOBYXLYX/javascript-interpreter/sandbox"
)

// This demonstrates driving a realm end to end: construct a host seeded
// with an initial document, run a script that touches the DOM/JSON/crypto
// façade and schedules a timer, then pump the scheduler so the timer
// actually fires before the program exits.
func main() {
	host := sandbox.New(sandbox.Config{
		Domain:   "https://example.com/",
		HTML:     `<body><ul id="list"></ul></body>`,
		Language: "en-US",
	})

	script := `
		var list = document.getElementById("list");
		for (var i = 0; i < 3; i++) {
			var item = document.createElement("li");
			item.setAttribute("data-index", String(i));
			item.textContent = "item " + i;
			list.appendChild(item);
		}

		var report = {
			items: list.children.length,
			id: crypto.randomUUID(),
			location: location.href,
		};

		setTimeout(function () {
			console.log("timer fired after append, list now:", list.toHTML());
		}, 10);

		JSON.stringify(report);
	`

	result, err := host.Run(script)
	if err != nil {
		fmt.Println("script error:", err)
		return
	}
	fmt.Println("JSON.stringify(report) ->", sandbox.ToString(result))

	host.PumpBlocking(100 * time.Millisecond)
	host.Stop()
}
