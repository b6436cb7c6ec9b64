package scene

import "github.com/iburimskiy/wobble-rings/internal/radius"

// Baseline is the radius every ring oscillates around.
const Baseline = 90

// Recipes are the hand-tuned wave sets, one per ring.
var Recipes = [3][]radius.WaveSpec{
	{
		{Size: 6, Count: 3, Speed: -0.01},
		{Size: 4, Count: 1, Speed: 0.08},
		{Size: 4, Count: 4, Speed: -0.001},
		{Size: 1, Count: 7, Speed: 0.01},
	},
	{
		{Size: 4, Count: 4, Speed: 0.02},
		{Size: 3, Count: 2, Speed: 0.04},
		{Size: 4, Count: 4, Speed: -0.04},
	},
	{
		{Size: 4, Count: 2, Speed: -0.002},
		{Size: 2, Count: 4, Speed: 0.052},
		{Size: -3, Count: 5, Speed: -0.0071},
		{Size: 4, Count: 1, Speed: -0.05},
	},
}
