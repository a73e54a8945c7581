package web

// indexPage is a minimal player: it draws uncompressed frames to
// a canvas, keeps the frame cache, and sends the keypad layout of
// keypad.FromRune back to the hub.
const indexPage = `<!DOCTYPE html>
<html>
<head>
<title>gochip8</title>
<style>
body { background: #241f31; color: #ddd; font-family: monospace; text-align: center; }
canvas { width: 768px; height: 384px; image-rendering: pixelated; }
</style>
</head>
<body>
<h3 id="title">gochip8</h3>
<canvas id="screen" width="64" height="32"></canvas>
<p id="status">connecting</p>
<script>
const keys = {"1":1,"2":2,"3":3,"4":12,"q":4,"w":5,"e":6,"r":13,"a":7,"s":8,"d":9,"f":14,"z":10,"x":0,"c":11,"v":15};
const ctx = document.getElementById("screen").getContext("2d");
const img = ctx.createImageData(64, 32);
let cache = [];
const ws = new WebSocket("ws://" + location.host + "/ws");
ws.binaryType = "arraybuffer";
ws.onopen = () => ws.send(new Uint8Array([4, 1, 0]));
ws.onclose = () => document.getElementById("status").textContent = "disconnected";
function draw(rgb) {
  for (let i = 0; i < 64 * 32; i++) {
    img.data[i*4] = rgb[i*3]; img.data[i*4+1] = rgb[i*3+1]; img.data[i*4+2] = rgb[i*3+2]; img.data[i*4+3] = 255;
  }
  ctx.putImageData(img, 0, 0);
}
ws.onmessage = (e) => {
  const m = new Uint8Array(e.data);
  switch (m[0]) {
  case 0: { const f = m.slice(4); cache[m[2] | m[3] << 8] = f; if (!m[1]) draw(f); break; }
  case 1: { const f = cache[m[2] | m[3] << 8]; if (f) draw(f); break; }
  case 2: cache = []; if (!m[1]) draw(m.slice(2)); break;
  case 5: document.getElementById("title").textContent = new TextDecoder().decode(m.slice(1)); break;
  case 8: document.getElementById("status").textContent = new TextDecoder().decode(m.slice(1)); break;
  case 4: document.getElementById("status").textContent = "connected, " + (m.length - 1) / 3 + " client(s)"; break;
  }
};
function key(type) {
  return (e) => {
    if (e.repeat) return;
    const k = keys[e.key.toLowerCase()];
    if (k !== undefined) { ws.send(new Uint8Array([type, k])); return; }
    if (type === 1 && e.key === "Escape") ws.send(new Uint8Array([3, 0]));
  };
}
document.addEventListener("keydown", key(1));
document.addEventListener("keyup", key(2));
</script>
</body>
</html>
`
