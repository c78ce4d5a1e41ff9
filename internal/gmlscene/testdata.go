package gmlscene

// testdataPattern exercises every lexical token kind the grammar
// supports: identifiers, binders, integers, floats (including
// scientific notation), strings, booleans, arrays and functions.
const testdataPattern = `1.0 0.2 0.2 color
/red
red
[ 1 2.5e1 true false "hi" ]
{ red }
/f
f apply
`

// testdataScene is a small but complete scene: one sphere and one
// plane, a single light, and a camera, rendered through the render
// builtin.
const testdataScene = `
sphere
1.0 0.2 0.2 color 0.1 0.9 0.9 200.0 0.3 0.0 1.0 material set-material
-0.5 1.0 0.5 translate
/ball

plane
0.9 0.9 0.9 color 0.1 0.9 0.0 200.0 0.0 0.0 1.0 material set-material
/floor

ball floor union
/scene

-10.0 10.0 -10.0 point
1.0 1.0 1.0 color
pointlight
/light1

0.0 0.0 0.0 color
/ambient

ambient
[ light1 ]
scene
11 11 1.0471975512
0.0 1.5 -5.0 point
0.0 1.0 0.0 point
0.0 1.0 0.0 vector
camera
5
"scene.png"
render
`
