package mesher

// Triangulations of a transition face for each of the 16 shape codes. Indices are relative to the first
// vertex of the face, in the order EmitFace adds them. faceTriangles winds clockwise in the face's
// (u, w) plane and flippedFaceTriangles is its mirror image. Every triangle list uses every vertex of
// its face, so a mid edge vertex always meets the corner of the finer neighbor.
var faceTriangles = [16][]int{
	{0, 3, 1, 0, 2, 3},
	{0, 3, 1, 1, 3, 4, 1, 4, 2},
	{0, 3, 2, 3, 4, 2, 0, 2, 1},
	{0, 4, 1, 1, 4, 3, 4, 5, 3, 1, 3, 2},
	{0, 2, 1, 2, 3, 4, 1, 2, 4},
	{0, 3, 1, 3, 4, 5, 1, 3, 5, 1, 5, 2},
	{0, 3, 1, 0, 2, 3, 2, 5, 3, 2, 4, 5},
	{0, 3, 1, 1, 3, 4, 1, 4, 2, 3, 5, 6, 3, 6, 4},
	{0, 2, 3, 0, 3, 1, 1, 3, 4},
	{0, 3, 4, 0, 4, 1, 1, 4, 5, 1, 5, 2},
	{0, 3, 4, 0, 4, 2, 0, 2, 1, 2, 4, 5},
	{0, 4, 5, 0, 5, 1, 1, 5, 3, 1, 3, 2, 5, 6, 3},
	{0, 2, 1, 2, 3, 4, 1, 2, 4, 1, 4, 5},
	{0, 3, 1, 3, 4, 5, 1, 3, 5, 1, 5, 6, 1, 6, 2},
	{0, 2, 3, 0, 3, 1, 2, 4, 5, 2, 5, 3, 3, 5, 6},
	{0, 3, 1, 1, 3, 4, 1, 4, 2, 3, 5, 6, 3, 6, 4, 4, 6, 7},
}

var flippedFaceTriangles = [16][]int{
	{0, 1, 3, 0, 3, 2},
	{0, 1, 3, 1, 4, 3, 1, 2, 4},
	{0, 2, 3, 3, 2, 4, 0, 1, 2},
	{0, 1, 4, 1, 3, 4, 4, 3, 5, 1, 2, 3},
	{0, 1, 2, 2, 4, 3, 1, 4, 2},
	{0, 1, 3, 3, 5, 4, 1, 5, 3, 1, 2, 5},
	{0, 1, 3, 0, 3, 2, 2, 3, 5, 2, 5, 4},
	{0, 1, 3, 1, 4, 3, 1, 2, 4, 3, 6, 5, 3, 4, 6},
	{0, 3, 2, 0, 1, 3, 1, 4, 3},
	{0, 4, 3, 0, 1, 4, 1, 5, 4, 1, 2, 5},
	{0, 4, 3, 0, 2, 4, 0, 1, 2, 2, 5, 4},
	{0, 5, 4, 0, 1, 5, 1, 3, 5, 1, 2, 3, 5, 3, 6},
	{0, 1, 2, 2, 4, 3, 1, 4, 2, 1, 5, 4},
	{0, 1, 3, 3, 5, 4, 1, 5, 3, 1, 6, 5, 1, 2, 6},
	{0, 3, 2, 0, 1, 3, 2, 5, 4, 2, 3, 5, 3, 6, 5},
	{0, 1, 3, 1, 4, 3, 1, 2, 4, 3, 6, 5, 3, 4, 6, 4, 7, 6},
}
