package webserver

import "strings"

const wsPathPlaceholder = "__WS_PATH__"

// renderPage returns the editor page wired to the websocket at wsPath.
func renderPage(wsPath string) []byte {
	return []byte(strings.ReplaceAll(page, wsPathPlaceholder, wsPath))
}

var page = `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>graphedit</title>
    <style>
        * {
            margin: 0;
            font-family: sans-serif;
        }
        body {
            display: flex;
        }
        #cytoscape {
            width: 66vw;
            height: 95vh;
        }
        #side {
            width: 34vw;
            height: 95vh;
            overflow-y: auto;
            padding: 8px;
        }
        #side button {
            width: 48%;
            margin: 2px 0;
        }
        .panel {
            display: none;
            border: thin lightgrey solid;
            padding: 6px;
            margin: 4px 0;
        }
        pre {
            overflow-y: scroll;
            height: 20vh;
            border: thin lightgrey solid;
        }
    </style>
    <script type="text/javascript" src="https://unpkg.com/cytoscape/dist/cytoscape.min.js"></script>
  </head>
  <body>
    <div id="cytoscape"></div>
    <div id="side">
      <h4>Actions</h4>
      <button id="remove-nodes-button">Remove Selected Nodes</button>
      <button id="rename-node-button">Rename Selected Node</button>
      <button id="remove-edges-button">Remove Selected Edges</button>
      <button id="add-new-edge-button">Add New Edge</button>

      <div class="panel" id="current-name"><b>Current name</b><p id="current-name-value"></p></div>
      <div class="panel" id="new-name"><b>New name</b><br><input id="new-name-value" type="text"></div>
      <div class="panel" id="rename-node-dialogue">
        <button id="cancel-rename-node-button">Cancel</button>
        <button id="apply-rename-node-button">Apply</button>
      </div>

      <div class="panel" id="source-node"><b>Source node</b><p id="source-node-label"></p></div>
      <div class="panel" id="target-node"><b>Target node</b><p id="target-node-label"></p></div>
      <div class="panel" id="create-new-edge-dialogue">
        <button id="cancel-create-new-edge-button">Cancel</button>
        <button id="apply-create-new-edge-button">Apply</button>
      </div>

      <h4>Tap Data</h4>
      <p>Node Data JSON:</p><pre id="tap-node-data-json-output"></pre>
      <p>Edge Data JSON:</p><pre id="tap-edge-data-json-output"></pre>
      <h4>Selected Data</h4>
      <p>Node Data JSON:</p><pre id="selected-node-data-json-output"></pre>
      <p>Edge Data JSON:</p><pre id="selected-edge-data-json-output"></pre>
    </div>
    <script type="text/javascript">
var cy = cytoscape({
  container: document.getElementById("cytoscape"),
  autolock: false,
  style: [
    {selector: "edge", style: {"target-arrow-shape": "triangle", "curve-style": "bezier"}},
    {selector: "node", style: {"label": "data(label)"}},
  ],
});

var scheme = location.protocol === "https:" ? "wss://" : "ws://";
var ws = new WebSocket(scheme + location.host + "__WS_PATH__");
var laidOut = false;

function selected(group) {
  return cy.$(group + ":selected").map(function (e) { return e.data(); });
}

function send(trigger, extra) {
  var ev = {
    trigger: trigger,
    selectedNodeData: selected("node"),
    selectedEdgeData: selected("edge"),
    value: document.getElementById("new-name-value").value,
  };
  ws.send(JSON.stringify(Object.assign(ev, extra || {})));
}

function show(id, visible) {
  document.getElementById(id).style.display = visible ? "block" : "none";
}

function text(id, value) {
  document.getElementById(id).textContent = value;
}

function render(view) {
  cy.json({elements: view.elements});
  if (!laidOut) {
    cy.layout({name: "breadthfirst"}).run();
    laidOut = true;
  }

  show("current-name", view.panels.currentName);
  show("new-name", view.panels.newName);
  show("rename-node-dialogue", view.panels.renameDialogue);
  show("source-node", view.panels.sourceNode);
  show("target-node", view.panels.targetNode);
  show("create-new-edge-dialogue", view.panels.createEdgeDialogue);

  text("current-name-value", view.currentName);
  text("source-node-label", view.sourceLabel);
  text("target-node-label", view.targetLabel);
  text("tap-node-data-json-output", view.echo.tapNode);
  text("tap-edge-data-json-output", view.echo.tapEdge);
  text("selected-node-data-json-output", view.echo.selectedNodes);
  text("selected-edge-data-json-output", view.echo.selectedEdges);

  if (view.mode.kind !== "renaming") {
    document.getElementById("new-name-value").value = view.newName;
  }
  if (view.tooManySelected) {
    alert("Can't rename more than one node");
  }
}

ws.onmessage = function (msg) {
  var m = JSON.parse(msg.data);
  if (m.type === "error") {
    console.error("graphedit:", m.error);
    return;
  }
  render(m.data);
};

[
  "remove-nodes-button", "remove-edges-button", "rename-node-button",
  "cancel-rename-node-button", "apply-rename-node-button", "add-new-edge-button",
  "cancel-create-new-edge-button", "apply-create-new-edge-button",
].forEach(function (id) {
  document.getElementById(id).addEventListener("click", function () { send(id); });
});

document.getElementById("new-name-value").addEventListener("change", function () {
  send("new-name-value");
});

cy.on("select unselect", "node", function () { send("cytoscape.selectedNodeData"); });
cy.on("select unselect", "edge", function () { send("cytoscape.selectedEdgeData"); });
cy.on("tap", "node", function (e) { send("cytoscape.tapNodeData", {tapData: e.target.data()}); });
cy.on("tap", "edge", function (e) { send("cytoscape.tapEdgeData", {tapData: e.target.data()}); });
    </script>
  </body>
</html>`
