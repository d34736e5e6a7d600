package gallery_test

import (
	"fmt"

	"github.com/matzehuels/mosaic/pkg/gallery"
	"github.com/matzehuels/mosaic/pkg/layout"
)

func ExampleKey() {
	fmt.Println(gallery.Key("sunset_beach.JPG"))
	fmt.Println(gallery.Key("tiles/harbor.dzi"))
	fmt.Println(gallery.Key("notes.txt"))
	// Output:
	// sunset_beach
	// tiles/harbor
	// notes.txt
}

func ExampleLabel() {
	fmt.Println(gallery.Label("old-town_at_dusk.jpg"))
	// Output: old town at dusk
}

func ExampleEncodeManifest() {
	images := []layout.Image{{ID: "sunset_beach.jpg", Width: 1600, Height: 900}}
	data, err := gallery.EncodeManifest(images, gallery.FormatJSON)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(string(data))
	// Output:
	// {
	//   "images": [
	//     {
	//       "id": "sunset_beach.jpg",
	//       "width": 1600,
	//       "height": 900
	//     }
	//   ]
	// }
}

func ExampleValidate() {
	err := gallery.Validate([]layout.Image{
		{ID: "beach.jpg", Width: 4, Height: 3},
		{ID: "beach.png", Width: 3, Height: 2},
	})
	fmt.Println(err)
	// Output: INVALID_MANIFEST: images "beach.jpg" and "beach.png" share key "beach"
}
