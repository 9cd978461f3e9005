package track

import "github.com/f1ledcircuit/replay-engine-go/pkg/model"

// DefaultLayout returns the built-in LED layout of the circuit board,
// 96 LEDs along the track outline.
func DefaultLayout() []model.LedCoordinate {
	return []model.LedCoordinate{
		{X: 6413, Y: 33},
		{X: 6007, Y: 197},
		{X: 5652, Y: 444},
		{X: 5431, Y: 822},
		{X: 5727, Y: 1143},
		{X: 6141, Y: 1268},
		{X: 6567, Y: 1355},
		{X: 6975, Y: 1482},
		{X: 7328, Y: 1738},
		{X: 7369, Y: 2173},
		{X: 7024, Y: 2448},
		{X: 6592, Y: 2505},
		{X: 6159, Y: 2530},
		{X: 5725, Y: 2525},
		{X: 5288, Y: 2489},
		{X: 4857, Y: 2434},
		{X: 4429, Y: 2356},
		{X: 4004, Y: 2249},
		{X: 3592, Y: 2122},
		{X: 3181, Y: 1977},
		{X: 2779, Y: 1812},
		{X: 2387, Y: 1624},
		{X: 1988, Y: 1453},
		{X: 1703, Y: 1779},
		{X: 1271, Y: 1738},
		{X: 1189, Y: 1314},
		{X: 1257, Y: 884},
		{X: 1333, Y: 454},
		{X: 1409, Y: 25},
		{X: 1485, Y: -405},
		{X: 1558, Y: -835},
		{X: 1537, Y: -1267},
		{X: 1208, Y: -1555},
		{X: 779, Y: -1606},
		{X: 344, Y: -1604},
		{X: -88, Y: -1539},
		{X: -482, Y: -1346},
		{X: -785, Y: -1038},
		{X: -966, Y: -644},
		{X: -1015, Y: -206},
		{X: -923, Y: 231},
		{X: -762, Y: 650},
		{X: -591, Y: 1078},
		{X: -423, Y: 1497},
		{X: -254, Y: 1915},
		{X: -86, Y: 2329},
		{X: 83, Y: 2744},
		{X: 251, Y: 3158},
		{X: 416, Y: 3574},
		{X: 588, Y: 3990},
		{X: 755, Y: 4396},
		{X: 920, Y: 4804},
		{X: 1086, Y: 5212},
		{X: 1250, Y: 5615},
		{X: 1418, Y: 6017},
		{X: 1583, Y: 6419},
		{X: 1909, Y: 6702},
		{X: 2306, Y: 6512},
		{X: 2319, Y: 6071},
		{X: 2152, Y: 5660},
		{X: 1988, Y: 5255},
		{X: 1853, Y: 4836},
		{X: 1784, Y: 4407},
		{X: 1779, Y: 3971},
		{X: 1605, Y: 3569},
		{X: 1211, Y: 3375},
		{X: 811, Y: 3188},
		{X: 710, Y: 2755},
		{X: 1116, Y: 2595},
		{X: 1529, Y: 2717},
		{X: 1947, Y: 2848},
		{X: 2371, Y: 2946},
		{X: 2806, Y: 2989},
		{X: 3239, Y: 2946},
		{X: 3665, Y: 2864},
		{X: 4092, Y: 2791},
		{X: 4523, Y: 2772},
		{X: 4945, Y: 2886},
		{X: 5331, Y: 3087},
		{X: 5703, Y: 3315},
		{X: 6105, Y: 3484},
		{X: 6538, Y: 3545},
		{X: 6969, Y: 3536},
		{X: 7402, Y: 3511},
		{X: 7831, Y: 3476},
		{X: 8241, Y: 3335},
		{X: 8549, Y: 3025},
		{X: 8703, Y: 2612},
		{X: 8662, Y: 2173},
		{X: 8451, Y: 1785},
		{X: 8203, Y: 1426},
		{X: 7973, Y: 1053},
		{X: 7777, Y: 664},
		{X: 7581, Y: 275},
		{X: 7274, Y: -35},
		{X: 6839, Y: -46},
	}
}
